// Package visualizer renders the simulated machine state as terminal text.
package visualizer

import "github.com/olivier-w/coilsim/internal/process"

// Frame is the state a renderer draws for one display refresh.
type Frame struct {
	Process   *process.CompressionSpringProcess
	Time      float64
	Positions process.AxisPositions
}

// Visualizer renders machine state as text.
type Visualizer interface {
	Name() string
	Update(f Frame, width, height int)
	View() string
}

// Modes returns all available visualizers.
func Modes() []Visualizer {
	return []Visualizer{
		NewGauges(DefaultLayout()),
		NewWire(),
		NewPhaseStrip(),
	}
}
