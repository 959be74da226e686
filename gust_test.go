package dandelion

import (
	"math"
	"testing"
)

// advance steps g from `from` to `to` in 60 Hz frames and returns the
// highest strength seen.
func advance(g *Gust, from, to float64) float64 {
	peak := g.Strength()
	for now := from; now <= to; now += 1.0 / 60 {
		peak = math.Max(peak, g.Update(now))
	}
	return peak
}

func TestGustStartsAtBase(t *testing.T) {
	g := NewGust(1.5)
	if g.Strength() != 1.5 || g.Base() != 1.5 {
		t.Errorf("strength/base = %v/%v, want 1.5", g.Strength(), g.Base())
	}
	if got := g.Update(10); got != 1.5 {
		t.Errorf("first Update = %v, want 1.5", got)
	}
	advance(g, 10, 12)
	if !approxEqual(g.Strength(), 1.5, 1e-6) {
		t.Errorf("resting gust drifted to %v", g.Strength())
	}
}

func TestGustSanitizesBase(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{math.NaN(), 0},
		{-2, 0},
		{math.Inf(1), 0},
		{50, maxWindStrength},
		{0.6, 0.6},
	}
	for _, tt := range tests {
		if got := NewGust(tt.in).Base(); got != tt.want {
			t.Errorf("NewGust(%v).Base() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGustSpringSmoothsSteps(t *testing.T) {
	g := NewGust(0)
	g.Update(0)
	g.SetBase(3)
	first := g.Update(1.0 / 60)
	if !(first > 0 && first < 3) {
		t.Errorf("one tick after a step: %v, want strictly between 0 and 3", first)
	}
	advance(g, 2.0/60, 4)
	if !approxEqual(g.Strength(), 3, 1e-3) {
		t.Errorf("settled at %v, want 3", g.Strength())
	}
}

func TestGustPuffDecays(t *testing.T) {
	g := NewGust(0.5)
	g.Update(0)
	g.Puff(2, 1)
	if !g.Puffing() {
		t.Fatal("Puff did not start")
	}
	peak := advance(g, 1.0/60, 0.5)
	if !(peak > 1) {
		t.Errorf("puff peak = %v, want above 1", peak)
	}
	advance(g, 0.5, 4)
	if g.Puffing() {
		t.Error("puff still active after its duration")
	}
	if !approxEqual(g.Strength(), 0.5, 1e-3) {
		t.Errorf("after puff: %v, want 0.5", g.Strength())
	}
}

func TestGustPuffZeroClears(t *testing.T) {
	g := NewGust(0)
	g.Puff(2, 1)
	g.Puff(0, 1)
	if g.Puffing() {
		t.Error("zero-strength puff left a puff running")
	}
	g.Puff(2, 0)
	if g.Puffing() {
		t.Error("zero-duration puff left a puff running")
	}
}

func TestGustStallIsCapped(t *testing.T) {
	g := NewGust(0)
	g.Update(0)
	g.SetBase(5)
	g.Update(100)
	if g.pending != 0 {
		t.Errorf("pending = %v after a capped stall, want 0", g.pending)
	}
	capped := g.Strength()

	h := NewGust(0)
	h.Update(0)
	h.SetBase(5)
	h.Update((float64(maxGustTicks) + 0.5) * gustTickSeconds)
	if !approxEqual(capped, h.Strength(), 1e-9) {
		t.Errorf("stall strength %v, %d ticks %v", capped, maxGustTicks, h.Strength())
	}
}

func TestGustIgnoresBadTime(t *testing.T) {
	g := NewGust(1)
	g.Update(math.NaN())
	if g.started {
		t.Error("NaN time started the gust clock")
	}
	g.Update(5)
	g.Update(4)
	if g.pending != 0 {
		t.Errorf("backwards time accumulated %v", g.pending)
	}
}
