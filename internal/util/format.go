package util

import (
	"fmt"
	"math"
)

// FormatSeconds formats a time in seconds as m:ss.cc.
func FormatSeconds(s float64) string {
	if s < 0 || math.IsNaN(s) {
		s = 0
	}
	cs := int(math.Round(s * 100))
	m := cs / 6000
	rest := cs % 6000
	return fmt.Sprintf("%d:%02d.%02d", m, rest/100, rest%100)
}
