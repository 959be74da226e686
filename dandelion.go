package dandelion

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at tessellation time.
type Color struct {
	R, G, B, A float64
}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API. The coordinate system has its origin at the top-left,
// with Y increasing downward.
type Vec2 struct {
	X, Y float64
}

// normalizeEpsilon is the length below which a vector is treated as zero.
const normalizeEpsilon = 0.0001

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns the unit vector in the direction of v, or the zero
// vector when v is (nearly) zero-length.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l <= normalizeEpsilon {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// OrDefault returns v, or (0, -1) (straight up) when v is (nearly) zero-length.
func (v Vec2) OrDefault() Vec2 {
	if v.Len() > normalizeEpsilon {
		return v
	}
	return Vec2{0, -1}
}

// Perp returns v rotated by +90°.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Rotated returns v rotated by angle radians.
func (v Vec2) Rotated(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Angle returns atan2(v.Y, v.X).
func (v Vec2) Angle() float64 { return math.Atan2(v.Y, v.X) }

// Size is a width/height pair in canvas units.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Range is a general-purpose closed min/max range.
// Used by the seed generator for every randomized parameter.
type Range struct {
	Min, Max float64
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp01 limits v to [0, 1].
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// wrapAngle maps angle into (-π, π].
func wrapAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	a := math.Mod(angle, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// finite reports whether v is neither NaN nor infinite.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
