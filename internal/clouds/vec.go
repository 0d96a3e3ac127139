package clouds

import "math"

// Vec2 is a two-component float vector used for tiling, offsets and directions.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Vec3 is a world-space direction.
type Vec3 struct {
	X, Y, Z float64
}

// Up is the world up axis the horizon plane is measured against.
var Up = Vec3{0, 1, 0}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 { return math.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length, or the zero vector when v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// AngleDeg returns the unsigned angle in degrees between a and b.
func AngleDeg(a, b Vec3) float64 {
	an, bn := a.Normalize(), b.Normalize()
	if an == (Vec3{}) || bn == (Vec3{}) {
		return 0
	}
	d := an.Dot(bn)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}
	return math.Acos(d) * 180 / math.Pi
}

// AngleToHorizon returns the signed angle in degrees between a light's forward
// direction and the horizon plane. A light shining straight down yields 90, a
// grazing light 0 and a light pointing up -90.
func AngleToHorizon(forward Vec3) float64 {
	return AngleDeg(Up, forward) - 90
}
