// Package recipe loads spring recipes from YAML files.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/olivier-w/coilsim/internal/process"
	"github.com/olivier-w/coilsim/internal/timeline"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedSpeed is returned for a playback speed with no matching
// speed mode.
var ErrUnsupportedSpeed = errors.New("unsupported playback speed")

// Recipe is one spring definition plus the machine timing and playback
// settings used to simulate it.
type Recipe struct {
	Name     string         `yaml:"name"`
	Spring   SpringConfig   `yaml:"spring"`
	Timing   TimingConfig   `yaml:"timing"`
	Playback PlaybackConfig `yaml:"playback"`

	Path string `yaml:"-"`
}

type SpringConfig struct {
	WireDiameter float64 `yaml:"wire_diameter"`
	MeanDiameter float64 `yaml:"mean_diameter"`
	ActiveCoils  float64 `yaml:"active_coils"`
	TotalCoils   float64 `yaml:"total_coils"`
	Pitch        float64 `yaml:"pitch"`
	EndType      string  `yaml:"end_type"`
	FeedSpeed    float64 `yaml:"feed_speed"`
}

// TimingConfig overrides process.DefaultTiming. Nil fields keep the default.
type TimingConfig struct {
	Idle             *float64 `yaml:"idle"`
	PreCut           *float64 `yaml:"pre_cut"`
	Cut              *float64 `yaml:"cut"`
	Reset            *float64 `yaml:"reset"`
	ApproachDelay    *float64 `yaml:"approach_delay"`
	CoilingRetract   *float64 `yaml:"coiling_retract"`
	CutSafe          *float64 `yaml:"cut_safe"`
	AdditionalSafe   *float64 `yaml:"additional_safe"`
	AdditionalEngage *float64 `yaml:"additional_engage"`
}

type PlaybackConfig struct {
	Speed float64 `yaml:"speed"`
	Loop  *bool   `yaml:"loop"`
}

// Default returns the reference valve spring.
func Default() *Recipe {
	return &Recipe{
		Name: "default spring",
		Spring: SpringConfig{
			WireDiameter: 2,
			MeanDiameter: 16,
			ActiveCoils:  8,
			TotalCoils:   10,
			Pitch:        4,
			EndType:      string(process.EndClosedGround),
			FeedSpeed:    50,
		},
		Playback: PlaybackConfig{Speed: 1},
	}
}

// Load reads and validates a recipe file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	r.Path = path
	if r.Name == "" {
		r.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return r, nil
}

// Parse decodes and validates recipe YAML. Missing spring fields are taken
// from Default.
func Parse(data []byte) (*Recipe, error) {
	r := Default()
	r.Name = ""

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(r); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding recipe: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks the spring parameters and timing overrides.
func (r *Recipe) Validate() error {
	if err := process.Validate(r.Input()); err != nil {
		return fmt.Errorf("invalid spring: %w", err)
	}
	if err := r.ProcessTiming().Validate(); err != nil {
		return fmt.Errorf("invalid timing: %w", err)
	}
	if _, ok := r.SpeedMode(); !ok {
		return fmt.Errorf("%w %g (supported: 0.25, 0.5, 1, 2)", ErrUnsupportedSpeed, r.Playback.Speed)
	}
	return nil
}

// SpeedMode returns the playback speed mode. An unset speed plays at 1x.
func (r *Recipe) SpeedMode() (timeline.SpeedMode, bool) {
	if r.Playback.Speed == 0 {
		return timeline.Speed1x, true
	}
	return timeline.SpeedFromMultiplier(r.Playback.Speed)
}

// Input converts the spring section into generator input.
func (r *Recipe) Input() process.SpringProcessInput {
	s := r.Spring
	return process.SpringProcessInput{
		WireDiameter: s.WireDiameter,
		MeanDiameter: s.MeanDiameter,
		ActiveCoils:  s.ActiveCoils,
		TotalCoils:   s.TotalCoils,
		Pitch:        s.Pitch,
		EndType:      process.EndType(s.EndType),
		FeedSpeed:    s.FeedSpeed,
	}
}

// ProcessTiming returns the default timing with the recipe's overrides applied.
func (r *Recipe) ProcessTiming() process.Timing {
	t := process.DefaultTiming()
	c := r.Timing
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&t.Idle, c.Idle)
	set(&t.PreCut, c.PreCut)
	set(&t.Cut, c.Cut)
	set(&t.Reset, c.Reset)
	set(&t.ApproachDelay, c.ApproachDelay)
	set(&t.CoilingRetract, c.CoilingRetract)
	set(&t.CutSafe, c.CutSafe)
	set(&t.AdditionalSafe, c.AdditionalSafe)
	set(&t.AdditionalEngage, c.AdditionalEngage)
	return t
}

// Generator returns a process generator configured with the recipe timing.
func (r *Recipe) Generator() *process.Generator {
	return process.NewGenerator(r.ProcessTiming())
}

// Looping reports whether playback should wrap at the end of the cycle.
func (r *Recipe) Looping() bool {
	return r.Playback.Loop == nil || *r.Playback.Loop
}
