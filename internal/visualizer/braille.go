package visualizer

import "strings"

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// brailleCanvas is a dot grid drawn with Unicode Braille characters.
// Each cell is 2 dots wide and 4 dots tall.
type brailleCanvas struct {
	cols, rows int
	cells      []uint8
}

func newBrailleCanvas(cols, rows int) *brailleCanvas {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &brailleCanvas{cols: cols, rows: rows, cells: make([]uint8, cols*rows)}
}

// dotWidth and dotHeight are the canvas size in dots.
func (c *brailleCanvas) dotWidth() int  { return c.cols * 2 }
func (c *brailleCanvas) dotHeight() int { return c.rows * 4 }

// set lights the dot at (x, y), origin top-left. Out-of-range dots are ignored.
func (c *brailleCanvas) set(x, y int) {
	if x < 0 || y < 0 || x >= c.dotWidth() || y >= c.dotHeight() {
		return
	}
	cell := (y/4)*c.cols + x/2
	c.cells[cell] |= 1 << brailleBits[x%2][y%4]
}

// vline lights a vertical run of dots from y0 to y1 inclusive.
func (c *brailleCanvas) vline(x, y0, y1 int) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		c.set(x, y)
	}
}

func (c *brailleCanvas) String() string {
	rows := make([]string, c.rows)
	for r := range c.rows {
		var line strings.Builder
		for col := range c.cols {
			line.WriteRune(rune(0x2800 + int(c.cells[r*c.cols+col])))
		}
		rows[r] = line.String()
	}
	return strings.Join(rows, "\n")
}
