package math

import "math"

// Vec2 is a 2D vector. For control input X is strafe and Y is forward.
type Vec2 struct {
	X, Y float32
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return float32(math.Sqrt(float64(v.X*v.X + v.Y*v.Y)))
}

// OnGround lifts v onto the horizontal XZ plane.
func (v Vec2) OnGround() Vec3 {
	return Vec3{X: v.X, Y: 0, Z: v.Y}
}
