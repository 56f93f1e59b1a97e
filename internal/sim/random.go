package sim

import (
	"math/rand"
	"time"
)

// Source is the random source threaded through the simulation.
// *math/rand.Rand satisfies it; tests inject stubs to force decay draws.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// NewSource returns a seeded source. A zero seed uses the current time.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// randInt returns a uniform integer in [lo, hi], both inclusive.
func randInt(rng Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// uniform returns a uniform float in [lo, hi).
func uniform(rng Source, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// decayDraw is the 1-in-16 chance that an old particle fades out this frame.
func decayDraw(rng Source) bool {
	return rng.Intn(16) == 0
}
