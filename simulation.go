package dandelion

// Integrator constants.
const (
	// maxStepDelta caps a single integration step so a stall (backgrounding,
	// a debugger pause) cannot blow up the springs.
	maxStepDelta = 1.0 / 30.0

	stemAngleLimit = 0.26
	stemWindGain   = 0.45
	stemStiffness  = 6.5
	stemDamping    = 3.4

	seedAngleLimit      = 0.45
	seedWindBase        = 0.65
	seedWindFlexGain    = 0.35
	seedTargetGain      = 0.7
	seedStiffnessPerFlx = 18.0
	seedDampingBase     = 5.2
)

// Simulation owns the stem spring and the per-seed springs of one flower head.
// It is created once per displayed flower, stepped by a single owner (usually
// a Driver), and read by the renderer. It is not safe for concurrent use; use
// Snapshot to hand a copy to another goroutine.
type Simulation struct {
	seeds []Seed
	back  []int
	front []int

	stemAngle    float64
	stemVelocity float64

	lastUpdate float64
	anchored   bool
}

// NewSimulation generates the seed field and returns a simulation at rest.
// Arguments are clamped as in GenerateSeeds.
func NewSimulation(seedCount, filamentsPerSeed int) *Simulation {
	seeds := GenerateSeeds(seedCount, filamentsPerSeed)
	back, front := partitionByDepth(seeds)
	return &Simulation{seeds: seeds, back: back, front: front}
}

// Seeds returns the seed array. The returned slice MUST NOT be mutated.
func (s *Simulation) Seeds() []Seed {
	return s.seeds
}

// BackIndices returns the indices of seeds behind the core disc. The returned
// slice MUST NOT be mutated.
func (s *Simulation) BackIndices() []int {
	return s.back
}

// FrontIndices returns the indices of seeds in front of the core disc. The
// returned slice MUST NOT be mutated.
func (s *Simulation) FrontIndices() []int {
	return s.front
}

// StemAngle returns the current stem deflection in radians.
func (s *Simulation) StemAngle() float64 {
	return s.stemAngle
}

// StemVelocity returns the current stem angular velocity.
func (s *Simulation) StemVelocity() float64 {
	return s.stemVelocity
}

// LastUpdate returns the timestamp of the last accepted step and whether any
// step has been accepted yet.
func (s *Simulation) LastUpdate() (float64, bool) {
	return s.lastUpdate, s.anchored
}

// Step advances the springs to time now (seconds, arbitrary epoch). The first
// call only records now. A now that does not move forward is ignored, and the
// integrated delta is capped at 1/30 s. Results depend only on the sequence of
// (now, windStrength) samples.
func (s *Simulation) Step(now, windStrength float64) {
	if !finite(now) {
		return
	}
	if !s.anchored {
		s.lastUpdate = now
		s.anchored = true
		return
	}
	if now <= s.lastUpdate {
		return
	}
	dt := min(now-s.lastUpdate, maxStepDelta)
	s.lastUpdate = now

	if !finite(windStrength) || windStrength < 0 {
		windStrength = 0
	}

	stemWind := WindVector(Vec2{}, now, windStrength)
	stemTarget := stemWind.X * stemWindGain
	stemAccel := (stemTarget-s.stemAngle)*stemStiffness - s.stemVelocity*stemDamping
	s.stemVelocity += stemAccel * dt
	s.stemAngle = clamp(s.stemAngle+s.stemVelocity*dt, -stemAngleLimit, stemAngleLimit)
	if !finite(s.stemAngle) || !finite(s.stemVelocity) {
		s.stemAngle, s.stemVelocity = 0, 0
	}

	for i := range s.seeds {
		stepSeed(&s.seeds[i], now, windStrength, dt)
	}
}

// stepSeed integrates one seed spring with semi-implicit Euler.
func stepSeed(seed *Seed, now, windStrength, dt float64) {
	wind := WindVector(seed.Projection, now, windStrength*(seedWindBase+seed.Flexibility*seedWindFlexGain))
	desired := seed.Orientation.Add(wind).Normalized().OrDefault()
	targetOffset := wrapAngle(desired.Angle()-seed.BaseAngle) * (seedTargetGain * seed.Flexibility)

	stiffness := seedStiffnessPerFlx * seed.Flexibility
	damping := seedDampingBase * seed.Damping
	accel := (targetOffset-seed.Angle)*stiffness - seed.AngularVelocity*damping

	seed.AngularVelocity += (accel / seed.Mass) * dt
	seed.Angle = clamp(seed.Angle+seed.AngularVelocity*dt, -seedAngleLimit, seedAngleLimit)
	if !finite(seed.Angle) || !finite(seed.AngularVelocity) {
		seed.Angle, seed.AngularVelocity = 0, 0
	}
}

// Snapshot returns a deep copy of the simulation, suitable for rendering on
// another goroutine while the original keeps stepping.
func (s *Simulation) Snapshot() *Simulation {
	cp := *s
	cp.seeds = make([]Seed, len(s.seeds))
	copy(cp.seeds, s.seeds)
	// Filament slices and index lists are never mutated after generation,
	// so sharing them is safe.
	return &cp
}
