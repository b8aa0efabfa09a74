package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/olivier-w/coilsim/internal/process"
	"github.com/olivier-w/coilsim/internal/util"
)

func newProgressBar() progress.Model {
	return progress.New(
		progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
		progress.WithoutPercentage(),
	)
}

func renderProgressLine(bar progress.Model, elapsed, total float64, width int) string {
	elapsedStr := util.FormatSeconds(elapsed)
	totalStr := util.FormatSeconds(total)
	barWidth := width - len(elapsedStr) - len(totalStr) - 6
	if barWidth < 10 {
		barWidth = 10
	}
	bar.Width = barWidth

	var ratio float64
	if total > 0 {
		ratio = elapsed / total
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return fmt.Sprintf("%s %s %s", timeStyle.Render(elapsedStr), bar.ViewAs(ratio), timeStyle.Render(totalStr))
}

func renderSpringSpec(g process.SpringGeometry, feedSpeed float64) string {
	return fmt.Sprintf("d %.2f  D %.2f  n %g/%g  p %.2f  feed %g mm/s  wire %.1f mm",
		g.WireDiameter, g.MeanDiameter, g.ActiveCoils, g.TotalCoils, g.Pitch, feedSpeed, g.TotalWireLength)
}

// renderPhaseTable lists the phase schedule, marking the phase at t.
func renderPhaseTable(p *process.CompressionSpringProcess, current process.Phase) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %-20s %9s %9s %8s\n", "phase", "start", "end", "dur"))
	for _, ph := range p.Phases {
		mark := " "
		if ph.Name == current {
			mark = "›"
		}
		b.WriteString(fmt.Sprintf("%s %-20s %8.3fs %8.3fs %7.3fs\n",
			mark, ph.Label, ph.StartTime, ph.EndTime, ph.Duration()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func spaces(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}

func indentBlock(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
