package dandelion

import "math/rand/v2"

// DefaultSeed is the fixed generator seed. Changing it changes the shape of
// every flower head, so it is part of the visual contract.
const DefaultSeed uint64 = 0xDA11F0AD

// zeroSeedFallback replaces a zero seed, which would lock xorshift at zero.
const zeroSeedFallback uint64 = 0x123456789ABCDEF0

// SeededSource is a xorshift64 generator. It implements rand.Source so it can
// back a *rand.Rand, giving the same sequence on every platform for a given
// seed. Not suitable for anything needing cryptographic quality.
type SeededSource struct {
	state uint64
}

// NewSeededSource returns a source seeded with seed.
func NewSeededSource(seed uint64) *SeededSource {
	if seed == 0 {
		seed = zeroSeedFallback
	}
	return &SeededSource{state: seed}
}

// Uint64 advances the generator and returns the next value.
func (s *SeededSource) Uint64() uint64 {
	x := s.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	s.state = x
	return x
}

// newSeededRand returns a *rand.Rand backed by a SeededSource.
func newSeededRand(seed uint64) *rand.Rand {
	return rand.New(NewSeededSource(seed))
}

// Random returns a value in [Min, Max] drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// randIntInclusive returns an integer in [lo, hi] drawn from rng.
func randIntInclusive(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
