package seiz

import "math"

// RateToProb converts a continuous-time rate into the probability that at
// least one event occurs within a step of duration dt, assuming
// exponentially distributed waiting times:
//
//	P = 1 - exp(-rate * dt)
//
// The result lies in [0, 1) for rate >= 0 and dt > 0. Only the baseline
// model converts its rates; the moderated variants treat their configured
// values directly as per-step probabilities.
func RateToProb(rate, dt float64) float64 {
	return 1 - math.Exp(-rate*dt)
}
