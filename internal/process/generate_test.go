package process

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioA() SpringProcessInput {
	return SpringProcessInput{
		WireDiameter: 2,
		MeanDiameter: 16,
		ActiveCoils:  8,
		TotalCoils:   10,
		Pitch:        4,
		EndType:      EndClosedGround,
		FeedSpeed:    50,
	}
}

func phaseNames(p *CompressionSpringProcess) []Phase {
	names := make([]Phase, len(p.Phases))
	for i, ph := range p.Phases {
		names[i] = ph.Name
	}
	return names
}

func randomInputs(n int) []SpringProcessInput {
	r := rand.New(rand.NewSource(7))
	out := make([]SpringProcessInput, 0, n)
	for range n {
		total := float64(3 + r.Intn(20))
		active := total - float64(r.Intn(5))
		if active < 1 {
			active = 1
		}
		out = append(out, SpringProcessInput{
			WireDiameter: 0.5 + r.Float64()*3,
			MeanDiameter: 8 + r.Float64()*40,
			ActiveCoils:  active,
			TotalCoils:   total,
			Pitch:        1 + r.Float64()*10,
			FeedSpeed:    10 + r.Float64()*200,
		})
	}
	return out
}

func TestGenerateScenarioA(t *testing.T) {
	p := Generate(scenarioA())

	wpc := math.Pi * 16
	assert.InDelta(t, 50.27, p.Geometry.WirePerCoil, 0.01)
	assert.InDelta(t, wpc*10, p.Geometry.TotalWireLength, 1e-9)
	assert.InDelta(t, 502.7, p.Geometry.TotalWireLength, 0.1)

	assert.Equal(t, []Phase{
		PhaseIdle, PhaseFirstClosedCoil, PhaseBodyCoils, PhaseEndClosedCoil,
		PhasePreCut, PhaseCutting, PhaseReset,
	}, phaseNames(p))

	first, ok := p.Phase(PhaseFirstClosedCoil)
	require.True(t, ok)
	assert.InDelta(t, wpc/50, first.Duration(), 1e-9)

	body, ok := p.Phase(PhaseBodyCoils)
	require.True(t, ok)
	assert.InDelta(t, 8*wpc/50, body.Duration(), 1e-9)

	assert.InDelta(t, 0.7+10*wpc/50, p.TotalCycleTime, 1e-9)
}

func TestGenerateScenarioBOmitsEndClosedPhase(t *testing.T) {
	in := scenarioA()
	in.ActiveCoils = 10
	p := Generate(in)

	assert.Equal(t, []Phase{
		PhaseIdle, PhaseFirstClosedCoil, PhaseBodyCoils,
		PhasePreCut, PhaseCutting, PhaseReset,
	}, phaseNames(p))

	first, ok := p.Phase(PhaseFirstClosedCoil)
	require.True(t, ok)
	assert.Zero(t, first.Duration())
	assert.InDelta(t, math.Pi*16*10, p.Geometry.TotalWireLength, 1e-9)
}

func TestGenerateOddClosedCoilsFavorLeadingEnd(t *testing.T) {
	in := scenarioA()
	in.TotalCoils = 11
	p := Generate(in)

	wpc := math.Pi * 16
	first, _ := p.Phase(PhaseFirstClosedCoil)
	end, ok := p.Phase(PhaseEndClosedCoil)
	require.True(t, ok)
	assert.InDelta(t, 2*wpc/50, first.Duration(), 1e-9)
	assert.InDelta(t, 1*wpc/50, end.Duration(), 1e-9)
}

func TestGenerateHalfClosedCoilOnlyLeads(t *testing.T) {
	in := scenarioA()
	in.TotalCoils = 9
	p := Generate(in)

	_, ok := p.Phase(PhaseEndClosedCoil)
	assert.False(t, ok)
	assert.InDelta(t, math.Pi*16*9, p.Geometry.TotalWireLength, 1e-9)
}

func TestGeneratePhasesAreContiguous(t *testing.T) {
	inputs := append(randomInputs(50), scenarioA())
	for _, in := range inputs {
		p := Generate(in)
		require.NotEmpty(t, p.Phases)
		assert.Zero(t, p.Phases[0].StartTime)
		for i := 0; i+1 < len(p.Phases); i++ {
			assert.Equal(t, p.Phases[i].EndTime, p.Phases[i+1].StartTime)
		}
		assert.Equal(t, p.TotalCycleTime, p.Phases[len(p.Phases)-1].EndTime)
		assert.Greater(t, p.TotalCycleTime, 0.0)
	}
}

func TestGenerateKeyframesAreOrderedAndCoverCycle(t *testing.T) {
	for _, in := range append(randomInputs(50), scenarioA()) {
		p := Generate(in)
		for _, id := range AllAxes() {
			a, ok := p.Profile(id)
			require.True(t, ok, "missing axis %s", id)
			require.NoError(t, ValidateKeyframes(a.Keyframes), "axis %s", id)
			assert.LessOrEqual(t, a.Keyframes[0].Time, 0.0)
			assert.GreaterOrEqual(t, a.Keyframes[len(a.Keyframes)-1].Time, p.TotalCycleTime)
		}
	}
}

func TestGenerateFeedIsMonotonic(t *testing.T) {
	for _, in := range append(randomInputs(50), scenarioA()) {
		p := Generate(in)
		kfs := p.Axes[AxisFeed].Keyframes
		for i := 1; i < len(kfs); i++ {
			assert.GreaterOrEqual(t, kfs[i].Position, kfs[i-1].Position)
		}
		assert.Zero(t, kfs[0].Position)
		assert.InDelta(t, p.Geometry.TotalWireLength, kfs[len(kfs)-1].Position, 1e-9)
	}
}

func TestGenerateAxisPositions(t *testing.T) {
	p := Generate(scenarioA())
	idle, _ := p.Phase(PhaseIdle)
	body, _ := p.Phase(PhaseBodyCoils)
	end, _ := p.Phase(PhaseEndClosedCoil)
	preCut, _ := p.Phase(PhasePreCut)
	cutting, _ := p.Phase(PhaseCutting)

	coiling := p.Axes[AxisCoiling]
	assert.Equal(t, 18.0, coiling.At(0))
	assert.Equal(t, 8.0, coiling.At(idle.EndTime))
	assert.Equal(t, 8.0, coiling.At(cutting.EndTime))
	assert.Equal(t, 18.0, coiling.At(p.TotalCycleTime))

	pitch := p.Axes[AxisPitch]
	assert.InDelta(t, 2+32, pitch.At(body.EndTime), 1e-9)
	assert.InDelta(t, 2+32+2, pitch.At(end.EndTime), 1e-9)
	assert.InDelta(t, 36, pitch.At(cutting.EndTime), 1e-9)
	assert.Zero(t, pitch.At(p.TotalCycleTime))

	cut := p.Axes[AxisCut]
	assert.Equal(t, 30.0, cut.At(preCut.StartTime))
	assert.InDelta(t, 15, cut.At(preCut.StartTime+0.1), 1e-9)
	assert.InDelta(t, 0, cut.At(cutting.EndTime-0.1), 1e-9)
	assert.Zero(t, cut.At(cutting.EndTime))
	assert.Equal(t, 30.0, cut.At(p.TotalCycleTime))

	additional := p.Axes[AxisAdditional]
	assert.Equal(t, 20.0, additional.At(0))
	assert.Equal(t, 5.0, additional.At(0.1))
	assert.Equal(t, 5.0, additional.At((body.EndTime+end.EndTime)/2))
	assert.Equal(t, 20.0, additional.At(p.TotalCycleTime))
}

func TestGenerateAdditionalStaysSafeWithoutEndCoils(t *testing.T) {
	in := scenarioA()
	in.ActiveCoils = 10
	p := Generate(in)
	body, _ := p.Phase(PhaseBodyCoils)

	additional := p.Axes[AxisAdditional]
	for _, tt := range []float64{body.EndTime - 0.05, body.EndTime, p.TotalCycleTime} {
		assert.Equal(t, 20.0, additional.At(tt))
	}
}

func TestGeneratorUsesCustomTiming(t *testing.T) {
	tm := DefaultTiming()
	tm.Cut = 1
	tm.CutSafe = 40
	p := NewGenerator(tm).Generate(scenarioA())

	cutting, ok := p.Phase(PhaseCutting)
	require.True(t, ok)
	assert.InDelta(t, 1, cutting.Duration(), 1e-9)
	assert.Equal(t, 40.0, p.Axes[AxisCut].At(0))
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := Generate(scenarioA())
	b := Generate(scenarioA())
	assert.Equal(t, a, b)
}
