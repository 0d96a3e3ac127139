package core

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Repeat wraps t into [0, length) using floating modulo. Negative inputs wrap
// from the top of the range. length must be positive.
func Repeat(t, length float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	r := t - math.Floor(t/length)*length
	if !(r >= 0 && r < length) {
		// Rounding at the range edges lands exactly on length or a hair below 0.
		return 0
	}
	return r
}

// WrapIndex applies toroidal wrapping to an integer coordinate on an axis of size n.
func WrapIndex(i, n int) int {
	return (i%n + n) % n
}

// Lerp interpolates linearly from a to b.
func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Smoothstep is the Hermite step between edge0 and edge1. Equal edges produce a
// hard step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge1 <= edge0 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}
