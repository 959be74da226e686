package dandelion

// Animation timing, in seconds unless noted.
const (
	// DetachDuration is how long a seed takes to fully leave the head.
	DetachDuration = 2.4
	// FlightFadeStart is the flight time after which a seed starts to fade.
	FlightFadeStart = 3.0
	// FlightFadeDuration is how long the fade takes; seeds are invisible
	// from FlightFadeStart+FlightFadeDuration on.
	FlightFadeDuration = 1.0

	// seedGrowthShare is each seed's own growth window as a share of the
	// restore duration.
	seedGrowthShare = 0.9
	// pappusGrowthStart is the growth progress at which the pappus begins to
	// open; the beak is already half grown by then.
	pappusGrowthStart = 0.3
)

// Anchors are the host-owned timestamps that drive seed release and regrowth.
// The core never writes them.
type Anchors struct {
	// DetachedSeedTimes maps a seed ID to the time it detached. Seeds without
	// an entry are attached.
	DetachedSeedTimes map[int]float64

	// RestoreStart is the time all detached seeds began regrowing. It is
	// only meaningful when Restoring is true.
	RestoreStart float64
	Restoring    bool
}

// Detachment is the resolved flight state of one seed.
type Detachment struct {
	Detached bool
	Progress float64 // smoothstepped, 0 → 1 over DetachDuration
	Elapsed  float64 // seconds since detachment, never negative
}

// ResolveDetachment returns the detachment state of seed id at time now.
func ResolveDetachment(id int, now float64, detached map[int]float64) Detachment {
	start, ok := detached[id]
	if !ok {
		return Detachment{}
	}
	elapsed := max(0, now-start)
	if !finite(elapsed) {
		elapsed = 0
	}
	return Detachment{
		Detached: true,
		Progress: Smoothstep(elapsed / DetachDuration),
		Elapsed:  elapsed,
	}
}

// RestoreProgress returns the global regrowth progress in [0, 1]: zero when
// no restore is running.
func RestoreProgress(now float64, anchors Anchors, duration float64) float64 {
	if !anchors.Restoring || duration <= 0 {
		return 0
	}
	elapsed := max(0, now-anchors.RestoreStart)
	return clamp01(elapsed / duration)
}

// GrowthProgress returns one seed's regrowth progress in [0, 1]. Each seed
// waits growthDelay (a fraction of duration) before its own window of
// 0.9·duration starts, so seeds bloom together with a little variance.
func GrowthProgress(restoreProgress, growthDelay, duration float64) float64 {
	if restoreProgress <= 0 || duration <= 0 {
		return 0
	}
	restoreElapsed := restoreProgress * duration
	seedElapsed := max(0, restoreElapsed-growthDelay*duration)
	return clamp01(seedElapsed / (duration * seedGrowthShare))
}

// BeakGrowth is the beak scale for a growth progress; it reaches 1 halfway
// through the seed's growth window.
func BeakGrowth(growth float64) float64 {
	return EaseOutCubic(min(1, max(0, growth*2)))
}

// PappusGrowth is the pappus scale for a growth progress. It starts at 30%
// and overshoots before settling at 1.
func PappusGrowth(growth float64) float64 {
	return EaseOutBack(clamp01((growth - pappusGrowthStart) / (1 - pappusGrowthStart)))
}

// GrowthOpacity is the fade-in applied to a regrowing seed.
func GrowthOpacity(growth float64) float64 {
	return EaseOutCubic(min(1, max(0, growth*3)))
}

// FlightFadeOpacity is 1 until FlightFadeStart, then eases to 0 over
// FlightFadeDuration.
func FlightFadeOpacity(elapsed float64) float64 {
	if elapsed <= FlightFadeStart {
		return 1
	}
	p := clamp01((elapsed - FlightFadeStart) / FlightFadeDuration)
	return 1 - EaseInCubic(p)
}

// SeedAnimation is the fully resolved animation state of one seed for a frame.
type SeedAnimation struct {
	Detachment Detachment

	// Restoring is true when a restore is running and the seed had detached.
	Restoring bool
	Growth    float64

	BeakScale   float64
	PappusScale float64
	// Opacity combines growth fade-in and flight fade-out.
	Opacity float64
}

// Visible reports whether any part of the seed can show this frame.
func (a SeedAnimation) Visible() bool {
	return a.Opacity > 0
}

// ResolveSeedAnimation resolves the complete animation state of seed at now.
// restoreProgress is the value of RestoreProgress for the same frame.
func ResolveSeedAnimation(seed *Seed, now float64, anchors Anchors, restoreProgress, duration float64) SeedAnimation {
	a := SeedAnimation{
		Detachment:  ResolveDetachment(seed.ID, now, anchors.DetachedSeedTimes),
		BeakScale:   1,
		PappusScale: 1,
		Opacity:     1,
	}
	if !a.Detachment.Detached {
		return a
	}
	if restoreProgress > 0 {
		a.Restoring = true
		a.Growth = GrowthProgress(restoreProgress, seed.GrowthDelay, duration)
		a.BeakScale = BeakGrowth(a.Growth)
		a.PappusScale = PappusGrowth(a.Growth)
		a.Opacity = GrowthOpacity(a.Growth)
		return a
	}
	a.Opacity = FlightFadeOpacity(a.Detachment.Elapsed)
	return a
}
