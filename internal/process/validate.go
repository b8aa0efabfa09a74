package process

import (
	"errors"
	"fmt"
)

var (
	ErrNonPositive    = errors.New("parameter must be positive")
	ErrActiveExceeds  = errors.New("active coils exceed total coils")
	ErrWireTooThick   = errors.New("wire diameter must be smaller than mean diameter")
	ErrNegativeTiming = errors.New("timing value must not be negative")
	ErrKeyframeOrder  = errors.New("keyframe times must not decrease")
	ErrUnknownEndType = errors.New("unknown end type")
)

// Validate checks the input against the generator's preconditions.
// Generate itself does not validate; callers that accept external
// parameters run Validate first and reject bad input.
func Validate(in SpringProcessInput) error {
	positive := []struct {
		name string
		v    float64
	}{
		{"wire_diameter", in.WireDiameter},
		{"mean_diameter", in.MeanDiameter},
		{"total_coils", in.TotalCoils},
		{"pitch", in.Pitch},
		{"feed_speed", in.FeedSpeed},
	}
	for _, p := range positive {
		if !(p.v > 0) {
			return fmt.Errorf("%w: %s = %g", ErrNonPositive, p.name, p.v)
		}
	}
	if !(in.ActiveCoils > 0) {
		return fmt.Errorf("%w: active_coils = %g", ErrNonPositive, in.ActiveCoils)
	}
	if in.ActiveCoils > in.TotalCoils {
		return fmt.Errorf("%w: %g > %g", ErrActiveExceeds, in.ActiveCoils, in.TotalCoils)
	}
	if in.WireDiameter >= in.MeanDiameter {
		return fmt.Errorf("%w: %g >= %g", ErrWireTooThick, in.WireDiameter, in.MeanDiameter)
	}
	switch in.EndType {
	case "", EndClosedGround, EndClosed, EndOpen:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEndType, in.EndType)
	}
	return nil
}

// ValidateKeyframes reports an error if keyframe times decrease anywhere.
func ValidateKeyframes(kfs []Keyframe) error {
	for i := 1; i < len(kfs); i++ {
		if kfs[i].Time < kfs[i-1].Time {
			return fmt.Errorf("%w: keyframe %d at %g after %g", ErrKeyframeOrder, i, kfs[i].Time, kfs[i-1].Time)
		}
	}
	return nil
}
