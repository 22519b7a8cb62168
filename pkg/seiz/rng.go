package seiz

import (
	"math/rand"
	"time"
)

// Each model owns its random source outright instead of sharing a
// process-global generator. InitializeStates with a non-nil seed replaces
// the source, which is what makes the reproducibility contract hold: same
// seed + same graph + same fractions gives an identical state assignment.
//
// A model that is never given a seed draws from a time-seeded source and is
// NOT reproducible across runs. That is the documented behavior, not a bug.

// Seed returns a pointer to the given seed value, for passing to
// InitializeStates.
func Seed(v int64) *int64 {
	return &v
}

func newTimeSeededRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
