package process

import "fmt"

// Timing holds the fixed phase durations and tool positions the generator
// lays out around the feed-driven phases. DefaultTiming reproduces the
// reference timeline.
type Timing struct {
	Idle          float64 // s
	PreCut        float64 // s
	Cut           float64 // s
	Reset         float64 // s
	ApproachDelay float64 // s, tool approach lag inside a phase

	CoilingRetract   float64 // mm beyond the mean radius
	CutSafe          float64 // mm
	AdditionalSafe   float64 // mm
	AdditionalEngage float64 // mm
}

// DefaultTiming returns the reference timing constants.
func DefaultTiming() Timing {
	return Timing{
		Idle:             0.1,
		PreCut:           0.1,
		Cut:              0.3,
		Reset:            0.2,
		ApproachDelay:    0.1,
		CoilingRetract:   10,
		CutSafe:          30,
		AdditionalSafe:   20,
		AdditionalEngage: 5,
	}
}

// Validate rejects negative durations and positions.
func (t Timing) Validate() error {
	fields := []struct {
		name string
		v    float64
	}{
		{"idle", t.Idle},
		{"pre_cut", t.PreCut},
		{"cut", t.Cut},
		{"reset", t.Reset},
		{"approach_delay", t.ApproachDelay},
		{"coiling_retract", t.CoilingRetract},
		{"cut_safe", t.CutSafe},
		{"additional_safe", t.AdditionalSafe},
		{"additional_engage", t.AdditionalEngage},
	}
	for _, f := range fields {
		if f.v < 0 {
			return fmt.Errorf("%w: %s = %g", ErrNegativeTiming, f.name, f.v)
		}
	}
	return nil
}
