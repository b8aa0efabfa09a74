package timeline

import "testing"

func TestSpeedFromMultiplier(t *testing.T) {
	for _, m := range []SpeedMode{Speed1x, Speed2x, SpeedHalf, SpeedQuarter} {
		got, ok := SpeedFromMultiplier(m.Multiplier())
		if !ok || got != m {
			t.Fatalf("expected %v for multiplier %g, got %v (ok=%v)", m, m.Multiplier(), got, ok)
		}
	}
}

func TestSpeedFromMultiplierRejectsOtherValues(t *testing.T) {
	for _, m := range []float64{10, 3, 0.1, 1.5, 0} {
		if _, ok := SpeedFromMultiplier(m); ok {
			t.Fatalf("expected multiplier %g to be unsupported", m)
		}
	}
}

func TestLoopModeNext(t *testing.T) {
	if LoopOn.Next() != LoopOff || LoopOff.Next() != LoopOn {
		t.Fatal("expected loop mode to toggle")
	}
	if LoopOn.Icon() == "" {
		t.Fatal("expected loop icon when looping")
	}
}
