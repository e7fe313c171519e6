package session

import "math/rand"

// SeededRandom is a RandomSource backed by a seeded math/rand generator, so a
// run can be replayed from its seed.
type SeededRandom struct {
	rng *rand.Rand
}

// NewSeededRandom creates a random source with the given seed.
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))}
}

// UniformInt implements RandomSource. An empty range returns lo.
func (r *SeededRandom) UniformInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Intn(hi-lo)
}
