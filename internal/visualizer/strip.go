package visualizer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/coilsim/internal/process"
)

var phaseColors = map[process.Phase]lipgloss.AdaptiveColor{
	process.PhaseIdle:            {Light: "#999999", Dark: "#666666"},
	process.PhaseFirstClosedCoil: {Light: "#2A7FBA", Dark: "#5FB3F0"},
	process.PhaseBodyCoils:       {Light: "#2E8B57", Dark: "#3CE074"},
	process.PhaseEndClosedCoil:   {Light: "#2A7FBA", Dark: "#5FB3F0"},
	process.PhasePreCut:          {Light: "#B8860B", Dark: "#F0C648"},
	process.PhaseCutting:         {Light: "#B22222", Dark: "#F26056"},
	process.PhaseReset:           {Light: "#777777", Dark: "#AAAAAA"},
	process.PhaseDone:            {Light: "#777777", Dark: "#AAAAAA"},
}

// PhaseStrip renders the cycle as a bar of phase segments with a cursor
// under the current time.
type PhaseStrip struct {
	output string
}

// NewPhaseStrip creates a phase strip renderer.
func NewPhaseStrip() *PhaseStrip {
	return &PhaseStrip{}
}

func (s *PhaseStrip) Name() string { return "phases" }

func (s *PhaseStrip) Update(f Frame, width, height int) {
	p := f.Process
	if p == nil || p.TotalCycleTime <= 0 {
		s.output = ""
		return
	}
	cols := width - 2
	if cols < 10 {
		cols = 10
	}

	var bar strings.Builder
	for col := range cols {
		t := (float64(col) + 0.5) / float64(cols) * p.TotalCycleTime
		ph := process.PhaseReset
		if i := p.PhaseIndex(t); i >= 0 {
			ph = p.Phases[i].Name
		}
		style := lipgloss.NewStyle().Foreground(phaseColors[ph])
		bar.WriteString(style.Render("▆"))
	}

	cursor := int(f.Time / p.TotalCycleTime * float64(cols))
	if cursor >= cols {
		cursor = cols - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	marker := strings.Repeat(" ", cursor) + "▲"

	s.output = bar.String() + "\n" + marker
}

func (s *PhaseStrip) View() string {
	return s.output
}

// PhaseColor returns the display color of a phase.
func PhaseColor(ph process.Phase) lipgloss.AdaptiveColor {
	return phaseColors[ph]
}
