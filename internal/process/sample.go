package process

import "math"

// Sample resolves every axis position of p at time t. Out-of-range times
// are clamped into [0, TotalCycleTime]; at or past the end the phase
// resolves to reset. A nil process samples as an idle machine at zero.
func Sample(p *CompressionSpringProcess, t float64) AxisPositions {
	if p == nil {
		return AxisPositions{CurrentPhase: PhaseIdle}
	}
	t = p.Clamp(t)

	pos := AxisPositions{
		CurrentPhase: p.phaseAt(t),
		Feed:         p.axisAt(AxisFeed, t),
		Coiling:      p.axisAt(AxisCoiling, t),
		Pitch:        p.axisAt(AxisPitch, t),
		Cut:          p.axisAt(AxisCut, t),
		Additional:   p.axisAt(AxisAdditional, t),
	}
	if p.Geometry.WirePerCoil > 0 {
		pos.CurrentCoils = pos.Feed / p.Geometry.WirePerCoil
	}
	return pos
}

// Clamp limits t to [0, TotalCycleTime].
func (p *CompressionSpringProcess) Clamp(t float64) float64 {
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > p.TotalCycleTime {
		return p.TotalCycleTime
	}
	return t
}

func (p *CompressionSpringProcess) phaseAt(t float64) Phase {
	if i := p.PhaseIndex(t); i >= 0 {
		return p.Phases[i].Name
	}
	return PhaseReset
}

func (p *CompressionSpringProcess) axisAt(id AxisID, t float64) float64 {
	a, ok := p.Axes[id]
	if !ok {
		return 0
	}
	return a.At(t)
}
