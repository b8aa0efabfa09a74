package process

// Interpolate returns the linearly interpolated position of kfs at time t.
// Times before the first keyframe or after the last are clamped to the
// boundary position. An empty slice yields 0.
func Interpolate(kfs []Keyframe, t float64) float64 {
	if len(kfs) == 0 {
		return 0
	}
	first, last := kfs[0], kfs[len(kfs)-1]
	if t <= first.Time {
		return first.Position
	}
	if t >= last.Time {
		return last.Position
	}

	for i := 0; i+1 < len(kfs); i++ {
		a, b := kfs[i], kfs[i+1]
		if t < a.Time || t >= b.Time {
			continue
		}
		span := b.Time - a.Time
		if span <= 0 {
			return a.Position
		}
		return a.Position + (t-a.Time)/span*(b.Position-a.Position)
	}
	return last.Position
}
