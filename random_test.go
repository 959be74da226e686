package dandelion

import "testing"

func TestSeededSourceKnownValue(t *testing.T) {
	s := NewSeededSource(1)
	if got := s.Uint64(); got != 1082269761 {
		t.Fatalf("Uint64() = %d, want 1082269761", got)
	}
}

func TestSeededSourceDeterministic(t *testing.T) {
	a := NewSeededSource(DefaultSeed)
	b := NewSeededSource(DefaultSeed)
	for i := 0; i < 1000; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestSeededSourceZeroSeed(t *testing.T) {
	a := NewSeededSource(0)
	b := NewSeededSource(zeroSeedFallback)
	if x, y := a.Uint64(), b.Uint64(); x != y || x == 0 {
		t.Fatalf("zero seed = %d, fallback = %d", x, y)
	}
}

func TestRangeRandomWithinBounds(t *testing.T) {
	rng := newSeededRand(42)
	r := Range{Min: -0.5, Max: 2}
	for i := 0; i < 1000; i++ {
		v := r.Random(rng)
		if v < r.Min || v > r.Max {
			t.Fatalf("Random() = %v, outside [%v, %v]", v, r.Min, r.Max)
		}
	}
}

func TestRangeRandomDegenerate(t *testing.T) {
	rng := newSeededRand(42)
	if got := (Range{Min: 3, Max: 3}).Random(rng); got != 3 {
		t.Errorf("Random() = %v, want 3", got)
	}
}

func TestRandIntInclusiveCoversEnds(t *testing.T) {
	rng := newSeededRand(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := randIntInclusive(rng, -3, 3)
		if v < -3 || v > 3 {
			t.Fatalf("randIntInclusive = %d, outside [-3, 3]", v)
		}
		seen[v] = true
	}
	if !seen[-3] || !seen[3] {
		t.Errorf("ends not reached: %v", seen)
	}
	if got := randIntInclusive(rng, 5, 5); got != 5 {
		t.Errorf("randIntInclusive(5, 5) = %d, want 5", got)
	}
}
