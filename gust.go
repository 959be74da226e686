package dandelion

import (
	"github.com/charmbracelet/harmonica"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Gust spring tuning.
const (
	gustFPS         = 60
	gustFrequency   = 4.0
	gustDamping     = 0.9
	maxGustTicks    = 30
	gustTickSeconds = 1.0 / gustFPS
)

// Gust smooths the host's wind strength. The output follows a spring toward
// the base strength plus any active puff, so abrupt changes never reach the
// simulation as a step.
type Gust struct {
	spring   harmonica.Spring
	base     float64
	level    float64
	velocity float64

	puff      *gween.Tween
	puffValue float64

	last    float64
	pending float64
	started bool
}

// NewGust creates a gust resting at base strength.
func NewGust(base float64) *Gust {
	base = sanitizeStrength(base)
	return &Gust{
		spring: harmonica.NewSpring(harmonica.FPS(gustFPS), gustFrequency, gustDamping),
		base:   base,
		level:  base,
	}
}

func sanitizeStrength(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return min(v, maxWindStrength)
}

// SetBase changes the resting strength the gust settles toward.
func (g *Gust) SetBase(strength float64) {
	g.base = sanitizeStrength(strength)
}

// Base returns the resting strength.
func (g *Gust) Base() float64 { return g.base }

// Puff adds a breath of extra strength that decays to zero over duration
// seconds, replacing any puff in progress.
func (g *Gust) Puff(strength, duration float64) {
	strength = sanitizeStrength(strength)
	if strength == 0 || duration <= 0 {
		g.puff = nil
		g.puffValue = 0
		return
	}
	g.puff = gween.New(float32(strength), 0, float32(duration), ease.OutQuad)
	g.puffValue = strength
}

// Puffing reports whether a puff is still decaying.
func (g *Gust) Puffing() bool { return g.puff != nil }

// Update advances the gust to now in fixed ticks and returns the smoothed
// strength. The first call only records the time.
func (g *Gust) Update(now float64) float64 {
	if !finite(now) {
		return g.Strength()
	}
	if !g.started {
		g.started = true
		g.last = now
		return g.Strength()
	}
	if now > g.last {
		g.pending += now - g.last
	}
	g.last = now

	ticks := 0
	for g.pending >= gustTickSeconds && ticks < maxGustTicks {
		g.tick()
		g.pending -= gustTickSeconds
		ticks++
	}
	if ticks == maxGustTicks {
		g.pending = 0
	}
	return g.Strength()
}

func (g *Gust) tick() {
	if g.puff != nil {
		v, done := g.puff.Update(gustTickSeconds)
		g.puffValue = float64(v)
		if done {
			g.puff = nil
			g.puffValue = 0
		}
	}
	target := g.base + g.puffValue
	g.level, g.velocity = g.spring.Update(g.level, g.velocity, target)
}

// Strength returns the current smoothed strength, never negative.
func (g *Gust) Strength() float64 {
	return sanitizeStrength(g.level)
}
