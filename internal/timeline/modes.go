package timeline

// SpeedMode represents the playback speed setting.
type SpeedMode int

const (
	Speed1x SpeedMode = iota
	Speed2x
	SpeedHalf
	SpeedQuarter
)

// Next cycles to the next speed mode: 1x → 2x → 0.5x → 0.25x → 1x.
func (s SpeedMode) Next() SpeedMode {
	switch s {
	case Speed1x:
		return Speed2x
	case Speed2x:
		return SpeedHalf
	case SpeedHalf:
		return SpeedQuarter
	default:
		return Speed1x
	}
}

// Multiplier returns the factor applied to each tick's elapsed time.
func (s SpeedMode) Multiplier() float64 {
	switch s {
	case Speed2x:
		return 2
	case SpeedHalf:
		return 0.5
	case SpeedQuarter:
		return 0.25
	default:
		return 1
	}
}

// Label returns a display label for the speed mode.
func (s SpeedMode) Label() string {
	switch s {
	case Speed2x:
		return "[2x]"
	case SpeedHalf:
		return "[0.5x]"
	case SpeedQuarter:
		return "[0.25x]"
	default:
		return ""
	}
}

// SpeedFromMultiplier returns the mode whose multiplier is exactly m.
// ok is false for any other value.
func SpeedFromMultiplier(m float64) (mode SpeedMode, ok bool) {
	for _, s := range []SpeedMode{Speed1x, Speed2x, SpeedHalf, SpeedQuarter} {
		if s.Multiplier() == m {
			return s, true
		}
	}
	return Speed1x, false
}

// LoopMode controls what happens when playback reaches the end of a cycle.
type LoopMode int

const (
	// LoopOn wraps back to t=0 and keeps playing.
	LoopOn LoopMode = iota
	// LoopOff holds the last frame, pauses and reports the done phase.
	LoopOff
)

// Next toggles the loop mode.
func (l LoopMode) Next() LoopMode {
	if l == LoopOn {
		return LoopOff
	}
	return LoopOn
}

// String returns the name of the loop mode.
func (l LoopMode) String() string {
	if l == LoopOff {
		return "single"
	}
	return "loop"
}

// Icon returns a visual indicator for the loop mode.
func (l LoopMode) Icon() string {
	if l == LoopOn {
		return "[loop]"
	}
	return ""
}
