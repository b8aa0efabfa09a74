package process

import "math"

// Generator builds cycles with a fixed set of timing constants.
type Generator struct {
	timing Timing
}

// NewGenerator returns a Generator using the given timing.
func NewGenerator(t Timing) *Generator {
	return &Generator{timing: t}
}

// Timing returns the generator's timing constants.
func (g *Generator) Timing() Timing {
	return g.timing
}

// Generate builds a cycle with DefaultTiming.
func Generate(in SpringProcessInput) *CompressionSpringProcess {
	return NewGenerator(DefaultTiming()).Generate(in)
}

// Generate lays out the phase schedule and axis keyframes for one spring.
// The input must satisfy Validate; FeedSpeed <= 0 gives undefined results.
func (g *Generator) Generate(in SpringProcessInput) *CompressionSpringProcess {
	tm := g.timing

	wirePerCoil := math.Pi * in.MeanDiameter
	closedCoils := (in.TotalCoils - in.ActiveCoils) / 2
	// The leading end takes the odd half coil.
	firstClosed := math.Ceil(closedCoils)
	endClosed := math.Floor(closedCoils)

	firstLen := wirePerCoil * firstClosed
	bodyLen := wirePerCoil * in.ActiveCoils
	endLen := wirePerCoil * endClosed
	totalLen := firstLen + bodyLen + endLen

	s := newSchedule()
	idle := s.add(PhaseIdle, tm.Idle)
	first := s.add(PhaseFirstClosedCoil, firstLen/in.FeedSpeed)
	body := s.add(PhaseBodyCoils, bodyLen/in.FeedSpeed)
	end := body
	if endClosed > 0 {
		end = s.add(PhaseEndClosedCoil, endLen/in.FeedSpeed)
	}
	preCut := s.add(PhasePreCut, tm.PreCut)
	cutting := s.add(PhaseCutting, tm.Cut)
	s.add(PhaseReset, tm.Reset)
	total := s.now

	radius := in.MeanDiameter / 2
	speed := in.FeedSpeed

	feed := newTrack()
	feed.at(0, 0)
	feed.atv(idle.EndTime, 0, 0)
	feed.atv(first.EndTime, firstLen, speed)
	feed.atv(body.EndTime, firstLen+bodyLen, speed)
	if endClosed > 0 {
		feed.atv(end.EndTime, totalLen, speed)
	}
	feed.atv(cutting.EndTime, totalLen, 0)
	feed.atv(total, totalLen, 0)

	coiling := newTrack()
	coiling.at(0, radius+tm.CoilingRetract)
	coiling.at(idle.EndTime, radius)
	coiling.at(cutting.EndTime, radius)
	coiling.at(total, radius+tm.CoilingRetract)

	pitchPos := 0.0
	pitch := newTrack()
	pitch.at(0, 0)
	pitch.at(idle.EndTime, 0)
	pitchPos += in.WireDiameter * firstClosed
	pitch.at(first.EndTime, pitchPos)
	pitchPos += in.Pitch * in.ActiveCoils
	pitch.at(body.EndTime, pitchPos)
	if endClosed > 0 {
		pitchPos += in.WireDiameter * endClosed
		pitch.at(end.EndTime, pitchPos)
	}
	pitch.at(cutting.EndTime, pitchPos)
	pitch.at(total, 0)

	half := tm.CutSafe / 2
	cut := newTrack()
	cut.at(0, tm.CutSafe)
	cut.at(preCut.StartTime, tm.CutSafe)
	cut.at(preCut.StartTime+tm.ApproachDelay, half)
	cut.at(cutting.EndTime-tm.ApproachDelay, 0)
	cut.at(cutting.EndTime, 0)
	cut.at(total, tm.CutSafe)

	additional := newTrack()
	additional.at(0, tm.AdditionalSafe)
	additional.at(math.Min(tm.ApproachDelay, idle.EndTime), tm.AdditionalEngage)
	additional.at(first.EndTime, tm.AdditionalEngage)
	additional.at(math.Min(first.EndTime+tm.ApproachDelay, body.EndTime), tm.AdditionalSafe)
	if endClosed > 0 {
		additional.at(body.EndTime-tm.ApproachDelay, tm.AdditionalSafe)
		additional.at(body.EndTime, tm.AdditionalEngage)
		additional.at(end.EndTime, tm.AdditionalEngage)
		additional.at(preCut.EndTime, tm.AdditionalSafe)
	}
	additional.at(total, tm.AdditionalSafe)

	return &CompressionSpringProcess{
		TotalCycleTime: total,
		Phases:         s.phases,
		Axes: map[AxisID]AxisProfile{
			AxisFeed:       {ID: AxisFeed, Name: "Feed", Unit: "mm", Keyframes: feed.kfs},
			AxisCoiling:    {ID: AxisCoiling, Name: "Coiling", Unit: "mm", Keyframes: coiling.kfs},
			AxisPitch:      {ID: AxisPitch, Name: "Pitch", Unit: "mm", Keyframes: pitch.kfs},
			AxisCut:        {ID: AxisCut, Name: "Cut", Unit: "mm", Keyframes: cut.kfs},
			AxisAdditional: {ID: AxisAdditional, Name: "Additional", Unit: "mm", Keyframes: additional.kfs},
		},
		Geometry: SpringGeometry{
			WireDiameter:    in.WireDiameter,
			MeanDiameter:    in.MeanDiameter,
			Pitch:           in.Pitch,
			TotalCoils:      in.TotalCoils,
			ActiveCoils:     in.ActiveCoils,
			WirePerCoil:     wirePerCoil,
			TotalWireLength: totalLen,
		},
		Input: in,
	}
}

// schedule appends contiguous phases starting at t=0.
type schedule struct {
	now    float64
	phases []PhaseData
}

func newSchedule() *schedule {
	return &schedule{phases: make([]PhaseData, 0, 7)}
}

func (s *schedule) add(name Phase, d float64) PhaseData {
	ph := PhaseData{
		Name:        name,
		Label:       name.Label(),
		StartTime:   s.now,
		EndTime:     s.now + d,
		Description: name.description(),
	}
	s.now = ph.EndTime
	s.phases = append(s.phases, ph)
	return ph
}

// track collects keyframes and keeps their times non-decreasing, so short
// feed phases never fold an approach offset back in time.
type track struct {
	kfs []Keyframe
}

func newTrack() *track {
	return &track{kfs: make([]Keyframe, 0, 8)}
}

func (tr *track) at(t, pos float64) {
	if n := len(tr.kfs); n > 0 && t < tr.kfs[n-1].Time {
		t = tr.kfs[n-1].Time
	}
	tr.kfs = append(tr.kfs, Keyframe{Time: t, Position: pos})
}

func (tr *track) atv(t, pos, vel float64) {
	tr.at(t, pos)
	tr.kfs[len(tr.kfs)-1].Velocity = &vel
}
