package dandelion

import (
	"math"
	"math/rand/v2"
)

// Generation limits. Out-of-range requests are clamped rather than rejected.
const (
	MinSeedCount        = 1
	MinFilamentsPerSeed = 12

	// filamentJitter is the ± random spread applied to the filament count.
	filamentJitter = 3
)

// goldenAngle is π(3-√5), the increment of the Fibonacci-sphere spiral.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Parameter ranges drawn from the seeded generator, in draw order.
var (
	filamentAngleJitter = Range{-0.08, 0.08}
	filamentPhaseRange  = Range{0, 2 * math.Pi}
	filamentLengthRange = Range{0.82, 1.12}

	beakLengthRange         = Range{0.28, 0.38}
	pappusRadiusRange       = Range{0.18, 0.26}
	anchorInsetRange        = Range{0.02, 0.08}
	anchorJitterRange       = Range{-0.02, 0.02}
	flexibilityRange        = Range{0.75, 1.1}
	dampingRange            = Range{0.75, 1.05}
	massRange               = Range{0.85, 1.2}
	swayFrequencyRange      = Range{0.6, 1.25}
	swayPhaseRange          = Range{0, 2 * math.Pi}
	detachmentDistanceRange = Range{0.18, 0.32}
	detachmentPhaseRange    = Range{0, 2 * math.Pi}
	flightDurationRange     = Range{5.0, 7.2}
	flightLiftRange         = Range{1.1, 1.5}
	flightDriftRange        = Range{-0.35, 0.35}
	growthDelayRange        = Range{0, 0.08}
)

// Seed is one pappus unit on the flower head. Everything except Angle and
// AngularVelocity is fixed at generation time. Lengths and radii are
// fractions of the head radius.
type Seed struct {
	ID int

	Projection  Vec2    // position on the unit head disc
	Orientation Vec2    // unit outward direction
	Depth       float64 // pseudo-z in [-1, 1], for layering and falloff only
	BaseAngle   float64 // atan2 of Orientation

	BeakLength      float64
	PappusRadius    float64
	FilamentAngles  []float64
	FilamentPhases  []float64
	FilamentLengths []float64
	AnchorInset     float64
	AnchorJitter    Vec2

	Flexibility   float64
	Damping       float64
	Mass          float64
	SwayFrequency float64
	SwayPhase     float64

	DetachmentDistance float64
	DetachmentPhase    float64
	FlightDuration     float64
	FlightLift         float64
	FlightDrift        float64
	GrowthDelay        float64

	// Angle is the current deflection from rest, clamped to ±seedAngleLimit.
	Angle           float64
	AngularVelocity float64
}

// FilamentCount returns the number of filament strands on the seed.
func (s *Seed) FilamentCount() int {
	return len(s.FilamentAngles)
}

// GenerateSeeds builds seedCount seeds with filamentsPerSeed (± jitter)
// filaments each. The result is a pure function of its arguments and
// DefaultSeed; no clock or other non-deterministic source is read.
// seedCount is clamped to MinSeedCount and filamentsPerSeed to
// MinFilamentsPerSeed.
func GenerateSeeds(seedCount, filamentsPerSeed int) []Seed {
	seedCount = max(seedCount, MinSeedCount)
	filamentsPerSeed = max(filamentsPerSeed, MinFilamentsPerSeed)

	rng := newSeededRand(DefaultSeed)
	seeds := make([]Seed, seedCount)
	for i := range seeds {
		seeds[i] = makeSeed(i, seedCount, filamentsPerSeed, rng)
	}
	return seeds
}

// makeSeed places seed index on the Fibonacci sphere and draws its
// parameters. The draw order is fixed; reordering it reshapes every flower.
func makeSeed(index, total, filamentsPerSeed int, rng *rand.Rand) Seed {
	t := 0.5
	if total > 1 {
		t = float64(index) / float64(total-1)
	}
	y := 1 - t*2
	radius := math.Sqrt(math.Max(0, 1-y*y))
	theta := goldenAngle * float64(index)
	x := math.Cos(theta) * radius
	z := math.Sin(theta) * radius

	projection := Vec2{x, y}
	orientation := projection.Normalized().OrDefault()

	count := max(MinFilamentsPerSeed, filamentsPerSeed+randIntInclusive(rng, -filamentJitter, filamentJitter))
	angles := make([]float64, count)
	phases := make([]float64, count)
	lengths := make([]float64, count)
	for i := 0; i < count; i++ {
		base := float64(i) / float64(count) * 2 * math.Pi
		angles[i] = base + filamentAngleJitter.Random(rng)
		phases[i] = filamentPhaseRange.Random(rng)
		lengths[i] = filamentLengthRange.Random(rng)
	}

	s := Seed{
		ID:              index,
		Projection:      projection,
		Orientation:     orientation,
		Depth:           z,
		BaseAngle:       orientation.Angle(),
		FilamentAngles:  angles,
		FilamentPhases:  phases,
		FilamentLengths: lengths,
	}
	s.BeakLength = beakLengthRange.Random(rng)
	s.PappusRadius = pappusRadiusRange.Random(rng)
	s.AnchorInset = anchorInsetRange.Random(rng)
	s.AnchorJitter.X = anchorJitterRange.Random(rng)
	s.AnchorJitter.Y = anchorJitterRange.Random(rng)
	s.Flexibility = flexibilityRange.Random(rng)
	s.Damping = dampingRange.Random(rng)
	s.Mass = massRange.Random(rng)
	s.SwayFrequency = swayFrequencyRange.Random(rng)
	s.SwayPhase = swayPhaseRange.Random(rng)
	s.DetachmentDistance = detachmentDistanceRange.Random(rng)
	s.DetachmentPhase = detachmentPhaseRange.Random(rng)
	s.FlightDuration = flightDurationRange.Random(rng)
	s.FlightLift = flightLiftRange.Random(rng)
	s.FlightDrift = flightDriftRange.Random(rng)
	s.GrowthDelay = growthDelayRange.Random(rng)
	return s
}

// partitionByDepth returns the indices of seeds behind the head (Depth < 0)
// and in front of it (Depth >= 0), each in generation order.
func partitionByDepth(seeds []Seed) (back, front []int) {
	for i := range seeds {
		if seeds[i].Depth < 0 {
			back = append(back, i)
		} else {
			front = append(front, i)
		}
	}
	return back, front
}
