package recipe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/olivier-w/coilsim/internal/process"
	"github.com/olivier-w/coilsim/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		check   func(t *testing.T, r *Recipe)
	}{
		{
			name: "full recipe",
			yaml: `
name: valve spring
spring:
  wire_diameter: 1.5
  mean_diameter: 12
  active_coils: 6
  total_coils: 9
  pitch: 3
  end_type: closed
  feed_speed: 80
timing:
  cut: 0.5
playback:
  speed: 2
  loop: false
`,
			check: func(t *testing.T, r *Recipe) {
				assert.Equal(t, "valve spring", r.Name)
				assert.Equal(t, process.SpringProcessInput{
					WireDiameter: 1.5,
					MeanDiameter: 12,
					ActiveCoils:  6,
					TotalCoils:   9,
					Pitch:        3,
					EndType:      process.EndClosed,
					FeedSpeed:    80,
				}, r.Input())
				tm := r.ProcessTiming()
				assert.Equal(t, 0.5, tm.Cut)
				assert.Equal(t, process.DefaultTiming().Reset, tm.Reset)
				assert.Equal(t, 2.0, r.Playback.Speed)
				assert.False(t, r.Looping())
			},
		},
		{
			name: "partial spring keeps defaults",
			yaml: "spring:\n  active_coils: 10\n",
			check: func(t *testing.T, r *Recipe) {
				in := r.Input()
				assert.Equal(t, 10.0, in.ActiveCoils)
				assert.Equal(t, 10.0, in.TotalCoils)
				assert.Equal(t, 50.0, in.FeedSpeed)
				assert.True(t, r.Looping())
				assert.Equal(t, process.DefaultTiming(), r.ProcessTiming())
			},
		},
		{
			name: "empty document",
			yaml: "",
			check: func(t *testing.T, r *Recipe) {
				assert.Equal(t, Default().Input(), r.Input())
			},
		},
		{
			name:    "active above total",
			yaml:    "spring:\n  active_coils: 12\n",
			wantErr: process.ErrActiveExceeds,
		},
		{
			name:    "zero feed",
			yaml:    "spring:\n  feed_speed: 0\n",
			wantErr: process.ErrNonPositive,
		},
		{
			name:    "unsupported speed",
			yaml:    "playback:\n  speed: 10\n",
			wantErr: ErrUnsupportedSpeed,
		},
		{
			name:    "negative speed",
			yaml:    "playback:\n  speed: -1\n",
			wantErr: ErrUnsupportedSpeed,
		},
		{
			name:    "negative timing",
			yaml:    "timing:\n  reset: -1\n",
			wantErr: process.ErrNegativeTiming,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse([]byte(tt.yaml))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, r)
		})
	}
}

func TestSpeedMode(t *testing.T) {
	r := Default()
	r.Playback.Speed = 0
	mode, ok := r.SpeedMode()
	assert.True(t, ok)
	assert.Equal(t, timeline.Speed1x, mode)

	r.Playback.Speed = 0.25
	mode, ok = r.SpeedMode()
	assert.True(t, ok)
	assert.Equal(t, timeline.SpeedQuarter, mode)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("spring:\n  coil_count: 3\n"))
	assert.Error(t, err)
}

func TestLoadNamesRecipeAfterFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "compression-a.yaml", "spring:\n  pitch: 5\n")

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "compression-a", r.Name)
	assert.Equal(t, path, r.Path)
	assert.Equal(t, 5.0, r.Spring.Pitch)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGeneratorUsesRecipeTiming(t *testing.T) {
	r, err := Parse([]byte("timing:\n  idle: 0.4\n"))
	require.NoError(t, err)

	p := r.Generator().Generate(r.Input())
	idle, ok := p.Phase(process.PhaseIdle)
	require.True(t, ok)
	assert.InDelta(t, 0.4, idle.Duration(), 1e-12)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yml", "")
	writeFile(t, dir, "A.yaml", "")
	writeFile(t, dir, "notes.txt", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.yaml"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "A.yaml"), filepath.Join(dir, "b.yml")}, files)
}

func TestIsRecipeExt(t *testing.T) {
	assert.True(t, IsRecipeExt(".YAML"))
	assert.True(t, IsRecipeExt(".yml"))
	assert.False(t, IsRecipeExt(".json"))
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "spring.yaml", "spring:\n  pitch: 4\n")

	w, err := Watch(path, nil)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "spring.yaml", "spring:\n  pitch: 6\n")

	select {
	case u := <-w.Updates():
		require.NoError(t, u.Err)
		assert.Equal(t, 6.0, u.Recipe.Spring.Pitch)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for recipe reload")
	}
}

func TestWatcherReportsInvalidEdit(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "spring.yaml", "spring:\n  pitch: 4\n")

	w, err := Watch(path, nil)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "spring.yaml", "spring:\n  pitch: -1\n")

	select {
	case u := <-w.Updates():
		assert.ErrorIs(t, u.Err, process.ErrNonPositive)
		assert.Nil(t, u.Recipe)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for recipe reload")
	}
}

func TestWatcherCloseClosesUpdates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "spring.yaml", "")
	w, err := Watch(path, nil)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	_, ok := <-w.Updates()
	assert.False(t, ok)
}
