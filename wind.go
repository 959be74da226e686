package dandelion

import "math"

// windTimeScale speeds up the field's temporal frequencies.
const windTimeScale = 1.35

// WindVector samples the synthetic wind field at position and time, scaled by
// strength. The field is a fixed sum of sinusoids: identical inputs always
// produce identical outputs, and no state is kept between calls.
func WindVector(position Vec2, time, strength float64) Vec2 {
	tf := time * windTimeScale
	x, y := position.X, position.Y

	slow := math.Sin(tf*0.18+x*1.4)*0.55 +
		math.Sin(tf*0.05+y*1.1)*0.35
	drift := math.Sin(tf*0.42+x*2.1+y*1.6) * 0.25
	swirl := math.Cos(tf*0.26+y*1.8) * 0.18

	windX := (slow + drift) * 0.22
	windY := (math.Sin(tf*0.12+x*1.7)*0.18 + swirl) * 0.18

	return Vec2{windX * strength, windY * strength}
}
