// Package process builds and samples the manufacturing timeline of a
// compression spring on a coiling machine.
package process

// EndType describes how the spring ends are finished.
type EndType string

const (
	EndClosedGround EndType = "closed_ground"
	EndClosed       EndType = "closed"
	EndOpen         EndType = "open"
)

// SpringProcessInput holds the geometry and feed rate a cycle is generated from.
// Lengths are in millimeters, FeedSpeed in mm/s.
type SpringProcessInput struct {
	WireDiameter float64
	MeanDiameter float64
	ActiveCoils  float64
	TotalCoils   float64
	Pitch        float64
	EndType      EndType
	FeedSpeed    float64
}

// Phase identifies a stage of the manufacturing cycle.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseFirstClosedCoil Phase = "first_closed_coil"
	PhaseBodyCoils       Phase = "body_coils"
	PhaseEndClosedCoil   Phase = "end_closed_coil"
	PhasePreCut          Phase = "pre_cut"
	PhaseCutting         Phase = "cutting"
	PhaseDone            Phase = "done"
	PhaseReset           Phase = "reset"
)

// Label returns the display label of the phase.
func (p Phase) Label() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseFirstClosedCoil:
		return "First closed coils"
	case PhaseBodyCoils:
		return "Body coils"
	case PhaseEndClosedCoil:
		return "End closed coils"
	case PhasePreCut:
		return "Pre-cut"
	case PhaseCutting:
		return "Cutting"
	case PhaseDone:
		return "Done"
	case PhaseReset:
		return "Reset"
	default:
		return string(p)
	}
}

func (p Phase) description() string {
	switch p {
	case PhaseIdle:
		return "coiling point and guide engage"
	case PhaseFirstClosedCoil:
		return "tight leading coils at wire-diameter pitch"
	case PhaseBodyCoils:
		return "active coils at working pitch"
	case PhaseEndClosedCoil:
		return "tight trailing coils at wire-diameter pitch"
	case PhasePreCut:
		return "feed stops, cutter approaches"
	case PhaseCutting:
		return "cutter shears the wire"
	case PhaseReset:
		return "tools return to home positions"
	default:
		return ""
	}
}

// PhaseData is one scheduled phase over the right-open interval [StartTime, EndTime).
type PhaseData struct {
	Name        Phase
	Label       string
	StartTime   float64
	EndTime     float64
	Description string
}

// Duration returns EndTime - StartTime.
func (p PhaseData) Duration() float64 {
	return p.EndTime - p.StartTime
}

// Contains reports whether t falls in [StartTime, EndTime).
func (p PhaseData) Contains(t float64) bool {
	return t >= p.StartTime && t < p.EndTime
}

// AxisID names a machine axis.
type AxisID string

const (
	AxisFeed       AxisID = "feed"
	AxisCoiling    AxisID = "coiling"
	AxisPitch      AxisID = "pitch"
	AxisCut        AxisID = "cut"
	AxisAdditional AxisID = "additional"
)

// AllAxes returns every axis in display order.
func AllAxes() []AxisID {
	return []AxisID{AxisFeed, AxisCoiling, AxisPitch, AxisCut, AxisAdditional}
}

// Keyframe anchors an axis position at a point in time. Velocity is optional.
type Keyframe struct {
	Time     float64
	Position float64
	Velocity *float64
}

// AxisProfile is the keyframed motion of one axis over a cycle.
type AxisProfile struct {
	ID        AxisID
	Name      string
	Unit      string
	Keyframes []Keyframe
}

// At returns the interpolated position of the profile at t.
func (a AxisProfile) At(t float64) float64 {
	return Interpolate(a.Keyframes, t)
}

// Range returns the smallest and largest keyframe positions.
func (a AxisProfile) Range() (lo, hi float64) {
	for i, k := range a.Keyframes {
		if i == 0 || k.Position < lo {
			lo = k.Position
		}
		if i == 0 || k.Position > hi {
			hi = k.Position
		}
	}
	return lo, hi
}

// SpringGeometry records the wire bookkeeping of a generated process.
type SpringGeometry struct {
	WireDiameter    float64
	MeanDiameter    float64
	Pitch           float64
	TotalCoils      float64
	ActiveCoils     float64
	WirePerCoil     float64
	TotalWireLength float64
}

// CompressionSpringProcess is an immutable, fully scheduled manufacturing
// cycle. A new one is generated whenever the spring parameters change.
type CompressionSpringProcess struct {
	TotalCycleTime float64
	Phases         []PhaseData
	Axes           map[AxisID]AxisProfile
	Geometry       SpringGeometry
	Input          SpringProcessInput
}

// Profile returns the keyframe profile of an axis.
func (p *CompressionSpringProcess) Profile(id AxisID) (AxisProfile, bool) {
	if p == nil {
		return AxisProfile{}, false
	}
	a, ok := p.Axes[id]
	return a, ok
}

// Phase returns the scheduled data of the named phase.
func (p *CompressionSpringProcess) Phase(name Phase) (PhaseData, bool) {
	if p == nil {
		return PhaseData{}, false
	}
	for _, ph := range p.Phases {
		if ph.Name == name {
			return ph, true
		}
	}
	return PhaseData{}, false
}

// PhaseIndex returns the index of the phase containing t, or -1.
func (p *CompressionSpringProcess) PhaseIndex(t float64) int {
	if p == nil {
		return -1
	}
	for i, ph := range p.Phases {
		if ph.Contains(t) {
			return i
		}
	}
	return -1
}

// AxisPositions is the resolved machine state at one instant.
type AxisPositions struct {
	Feed         float64
	Coiling      float64
	Pitch        float64
	Cut          float64
	Additional   float64
	CurrentPhase Phase
	CurrentCoils float64
}

// Position returns the position of the given axis, or 0 for an unknown id.
func (a AxisPositions) Position(id AxisID) float64 {
	switch id {
	case AxisFeed:
		return a.Feed
	case AxisCoiling:
		return a.Coiling
	case AxisPitch:
		return a.Pitch
	case AxisCut:
		return a.Cut
	case AxisAdditional:
		return a.Additional
	default:
		return 0
	}
}
