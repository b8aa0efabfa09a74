package visualizer

import "github.com/olivier-w/coilsim/internal/process"

// Tool describes how one machine axis is presented: its label, the tool it
// moves, and the stroke range the gauge spans.
type Tool struct {
	Axis  process.AxisID
	Label string
	Tool  string
	Min   float64
	Max   float64
}

// Layout is the machine's tool arrangement as seen by renderers. It is
// independent of the timeline and may be swapped per machine.
type Layout struct {
	Tools []Tool
}

// DefaultLayout returns the five-axis coiler arrangement.
func DefaultLayout() Layout {
	return Layout{Tools: []Tool{
		{Axis: process.AxisFeed, Label: "feed", Tool: "feed rolls"},
		{Axis: process.AxisCoiling, Label: "coil", Tool: "coiling point"},
		{Axis: process.AxisPitch, Label: "pitch", Tool: "pitch tool"},
		{Axis: process.AxisCut, Label: "cut", Tool: "cutter"},
		{Axis: process.AxisAdditional, Label: "aux", Tool: "guide"},
	}}
}

// WithRanges returns a copy whose stroke ranges cover every keyframe of p.
// Tools whose axis has no profile keep their configured range.
func (l Layout) WithRanges(p *process.CompressionSpringProcess) Layout {
	out := Layout{Tools: make([]Tool, len(l.Tools))}
	copy(out.Tools, l.Tools)
	for i := range out.Tools {
		t := &out.Tools[i]
		a, ok := p.Profile(t.Axis)
		if !ok || len(a.Keyframes) == 0 {
			continue
		}
		lo, hi := a.Range()
		if lo > 0 {
			lo = 0
		}
		if hi <= lo {
			hi = lo + 1
		}
		t.Min, t.Max = lo, hi
	}
	return out
}

// Level maps v onto [0, 1] across the tool's stroke.
func (t Tool) Level(v float64) float64 {
	if t.Max <= t.Min {
		return 0
	}
	return clamp01((v - t.Min) / (t.Max - t.Min))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
