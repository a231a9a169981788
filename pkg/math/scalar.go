package math

import "math"

// Clamp restricts x to [lo, hi]. NaN maps to lo.
func Clamp(x, lo, hi float32) float32 {
	if x != x || x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 restricts x to [0, 1].
func Clamp01(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Sin is a float32 convenience wrapper.
func Sin(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

// Cos is a float32 convenience wrapper.
func Cos(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}
