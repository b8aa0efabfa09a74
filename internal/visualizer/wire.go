package visualizer

import (
	"math"

	"github.com/olivier-w/coilsim/internal/process"
)

// Wire draws a side view of the spring as formed so far: the wire traced
// over the coils fed, laid out along the spring axis at closed-coil and
// working pitch.
type Wire struct {
	output string
}

// NewWire creates a wire side-view renderer.
func NewWire() *Wire {
	return &Wire{}
}

func (w *Wire) Name() string { return "wire" }

func (w *Wire) Update(f Frame, width, height int) {
	if f.Process == nil || width < 4 || height < 1 {
		w.output = ""
		return
	}
	g := f.Process.Geometry
	c := newBrailleCanvas(width-2, height)

	free := freeLength(g, g.TotalCoils)
	if free <= 0 {
		w.output = c.String()
		return
	}
	radius := g.MeanDiameter / 2
	span := radius + g.WireDiameter/2
	xScale := float64(c.dotWidth()-1) / free
	yScale := float64(c.dotHeight()-1) / (2 * span)

	coils := math.Min(f.Positions.CurrentCoils, g.TotalCoils)
	steps := int(coils * 48)
	for i := 0; i <= steps; i++ {
		n := coils * float64(i) / float64(max(steps, 1))
		x := freeLength(g, n) * xScale
		y := (span - radius*math.Cos(2*math.Pi*n)) * yScale
		c.set(int(math.Round(x)), int(math.Round(y)))
	}

	// cutter marks the wire end while it is down
	if f.Positions.Cut < 1 && coils > 0 {
		x := int(math.Round(freeLength(g, coils) * xScale))
		c.vline(x+1, 0, c.dotHeight()-1)
	}
	w.output = c.String()
}

func (w *Wire) View() string {
	return w.output
}

// freeLength returns the axial length of the first n coils: leading closed
// coils at wire pitch, then the body at working pitch, then trailing
// closed coils at wire pitch again.
func freeLength(g process.SpringGeometry, n float64) float64 {
	closed := (g.TotalCoils - g.ActiveCoils) / 2
	first := math.Ceil(closed)

	lead := math.Min(n, first)
	length := lead * g.WireDiameter
	n -= lead
	if n <= 0 {
		return length
	}
	body := math.Min(n, g.ActiveCoils)
	length += body * g.Pitch
	n -= body
	if n <= 0 {
		return length
	}
	return length + n*g.WireDiameter
}
