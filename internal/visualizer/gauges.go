package visualizer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/coilsim/internal/process"
)

var (
	gaugeFillStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#C25E00", Dark: "#FF8C00"})

	gaugeTrackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#444444"})

	gaugeLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
)

// Gauges renders one horizontal bar per axis, eased toward the sampled
// position, with the exact value printed beside it.
type Gauges struct {
	base    Layout
	layout  Layout
	field   springField
	process *process.CompressionSpringProcess
	output  string
}

// NewGauges creates axis gauges for the given tool layout.
func NewGauges(l Layout) *Gauges {
	return &Gauges{
		base:   l,
		layout: l,
		field:  newSpringField(30, 9.0, 0.9),
	}
}

func (g *Gauges) Name() string { return "axes" }

// Layout returns the layout in use, with ranges fitted to the current process.
func (g *Gauges) Layout() Layout { return g.layout }

func (g *Gauges) Update(f Frame, width, height int) {
	if f.Process == nil {
		g.output = ""
		return
	}

	tools := g.base.Tools
	g.field.resize(len(tools))
	targets := make([]float64, len(tools))
	for i, t := range tools {
		targets[i] = f.Positions.Position(t.Axis)
	}
	if f.Process != g.process || !g.field.primed {
		g.process = f.Process
		g.layout = g.base.WithRanges(f.Process)
		g.field.snap(targets)
	}

	barWidth := width - 24
	if barWidth < 10 {
		barWidth = 10
	}

	rows := make([]string, 0, len(tools))
	for i, t := range g.layout.Tools {
		if height > 0 && len(rows) >= height {
			break
		}
		shown := g.field.step(i, targets[i])
		filled := int(t.Level(shown)*float64(barWidth) + 0.5)
		bar := gaugeFillStyle.Render(strings.Repeat("█", filled)) +
			gaugeTrackStyle.Render(strings.Repeat("─", barWidth-filled))
		label := gaugeLabelStyle.Render(fmt.Sprintf("%-6s", t.Label))
		rows = append(rows, fmt.Sprintf(" %s %s %8.2f mm", label, bar, targets[i]))
	}
	g.output = strings.Join(rows, "\n")
}

func (g *Gauges) View() string {
	return g.output
}
