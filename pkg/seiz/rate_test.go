package seiz

import (
	"math"
	"testing"
)

func TestRateToProbZeroRate(t *testing.T) {
	if got := RateToProb(0, 1.0); got != 0 {
		t.Errorf("RateToProb(0, 1) = %v, want 0", got)
	}
}

func TestRateToProbKnownValues(t *testing.T) {
	tests := []struct {
		rate, dt, want float64
	}{
		{1.0, 1.0, 1 - math.Exp(-1)},
		{0.3, 1.0, 1 - math.Exp(-0.3)},
		{0.3, 0.5, 1 - math.Exp(-0.15)},
		{2.0, 2.0, 1 - math.Exp(-4)},
	}
	for _, tc := range tests {
		got := RateToProb(tc.rate, tc.dt)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("RateToProb(%v, %v) = %v, want %v", tc.rate, tc.dt, got, tc.want)
		}
	}
}

func TestRateToProbBounded(t *testing.T) {
	for _, rate := range []float64{0, 0.01, 0.5, 1, 10, 1000} {
		p := RateToProb(rate, 1.0)
		if p < 0 || p >= 1 {
			t.Errorf("RateToProb(%v, 1) = %v, want value in [0, 1)", rate, p)
		}
	}
}

func TestRateToProbMonotone(t *testing.T) {
	prev := -1.0
	for rate := 0.0; rate <= 5.0; rate += 0.25 {
		p := RateToProb(rate, 1.0)
		if p <= prev {
			t.Fatalf("RateToProb not strictly increasing at rate=%v: %v <= %v", rate, p, prev)
		}
		prev = p
	}
}
