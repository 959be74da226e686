package dandelion

import "github.com/tanema/gween/ease"

// easeUnit evaluates a gween easing function over the unit interval.
// gween works in float32, which is ample for opacities and scales.
func easeUnit(fn ease.TweenFunc, t float64) float64 {
	return float64(fn(float32(t), 0, 1, 1))
}

// EaseOutCubic is 1 + (t-1)³.
func EaseOutCubic(t float64) float64 {
	return easeUnit(ease.OutCubic, t)
}

// EaseInCubic is t³.
func EaseInCubic(t float64) float64 {
	return easeUnit(ease.InCubic, t)
}

// EaseOutBack is 1 + c3(t-1)³ + c1(t-1)² with c1 = 1.70158 and c3 = c1+1.
// It overshoots past 1 before settling.
func EaseOutBack(t float64) float64 {
	return easeUnit(ease.OutBack, t)
}

// Smoothstep is t²(3-2t) over t clamped to [0, 1].
func Smoothstep(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}
