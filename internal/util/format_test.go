package util

import "testing"

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{
		0:       "0:00.00",
		-3:      "0:00.00",
		10.7531: "0:10.75",
		59.999:  "1:00.00",
		75.5:    "1:15.50",
	}
	for in, want := range cases {
		if got := FormatSeconds(in); got != want {
			t.Fatalf("FormatSeconds(%g): expected %q, got %q", in, want, got)
		}
	}
}
