package visualizer

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/coilsim/internal/process"
)

func testProcess() *process.CompressionSpringProcess {
	return process.Generate(process.SpringProcessInput{
		WireDiameter: 2,
		MeanDiameter: 16,
		ActiveCoils:  8,
		TotalCoils:   10,
		Pitch:        4,
		FeedSpeed:    50,
	})
}

func frameAt(p *process.CompressionSpringProcess, t float64) Frame {
	return Frame{Process: p, Time: t, Positions: process.Sample(p, t)}
}

func TestBrailleCanvasSetsDots(t *testing.T) {
	c := newBrailleCanvas(2, 1)
	c.set(0, 0)
	c.set(3, 3)
	c.set(99, 0)

	got := []rune(c.String())
	if got[0] != rune(0x2800+1) {
		t.Fatalf("expected top-left dot, got %U", got[0])
	}
	if got[1] != rune(0x2800+(1<<7)) {
		t.Fatalf("expected bottom-right dot, got %U", got[1])
	}
}

func TestFreeLengthFollowsPitchSections(t *testing.T) {
	g := testProcess().Geometry
	cases := []struct {
		coils float64
		want  float64
	}{
		{0, 0},
		{1, 2},
		{5, 2 + 4*4},
		{9, 2 + 8*4},
		{10, 2 + 8*4 + 2},
	}
	for _, tc := range cases {
		if got := freeLength(g, tc.coils); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("freeLength(%g): expected %g, got %g", tc.coils, tc.want, got)
		}
	}
}

func TestWireGrowsWithFeed(t *testing.T) {
	p := testProcess()
	w := NewWire()

	w.Update(frameAt(p, 0), 40, 4)
	empty := strings.Count(w.View(), string(rune(0x2800)))

	body, _ := p.Phase(process.PhaseBodyCoils)
	w.Update(frameAt(p, body.EndTime), 40, 4)
	partial := strings.Count(w.View(), string(rune(0x2800)))

	if partial >= empty {
		t.Fatalf("expected fewer blank cells after feeding, got %d >= %d", partial, empty)
	}
	if lipgloss.Height(w.View()) != 4 {
		t.Fatalf("expected 4 rows, got %d", lipgloss.Height(w.View()))
	}
}

func TestGaugesFitRangesToProcess(t *testing.T) {
	p := testProcess()
	g := NewGauges(DefaultLayout())
	g.Update(frameAt(p, 0), 60, 5)

	for _, tool := range g.Layout().Tools {
		a, _ := p.Profile(tool.Axis)
		_, hi := a.Range()
		if tool.Max != hi {
			t.Fatalf("axis %s: expected max %g, got %g", tool.Axis, hi, tool.Max)
		}
	}
	if n := strings.Count(g.View(), "\n") + 1; n != 5 {
		t.Fatalf("expected 5 gauge rows, got %d", n)
	}
	if !strings.Contains(g.View(), "30.00 mm") {
		t.Fatalf("expected cut safe position in view, got %q", g.View())
	}
}

func TestGaugesEmptyWithoutProcess(t *testing.T) {
	g := NewGauges(DefaultLayout())
	g.Update(Frame{}, 60, 5)
	if g.View() != "" {
		t.Fatalf("expected empty view, got %q", g.View())
	}
}

func TestToolLevelClamps(t *testing.T) {
	tool := Tool{Min: 0, Max: 30}
	if tool.Level(-5) != 0 || tool.Level(15) != 0.5 || tool.Level(45) != 1 {
		t.Fatal("expected level to clamp into [0, 1]")
	}
	if (Tool{}).Level(3) != 0 {
		t.Fatal("expected empty range to yield 0")
	}
}

func TestPhaseStripCursorFollowsTime(t *testing.T) {
	p := testProcess()
	s := NewPhaseStrip()
	s.Update(frameAt(p, p.TotalCycleTime/2), 22, 2)

	lines := strings.Split(s.View(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected bar and cursor lines, got %d", len(lines))
	}
	if got := strings.Index(lines[1], "▲"); got != 10 {
		t.Fatalf("expected cursor at column 10, got %d", got)
	}
}
