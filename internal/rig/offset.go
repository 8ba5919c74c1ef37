// Package rig implements a follow camera on a retractable boom.
//
// The camera sits at a zoom-scaled, rotated offset from a target and always
// looks back at it. When scene geometry breaks line of sight the boom is
// retracted by raising a dynamic zoom level; a manual zoom acts as a floor.
//
// All operations are pure: they take the rig State and return a new one. The
// host stores the State between frames.
package rig

import (
	gomath "math"

	"github.com/Faultbox/followcam/pkg/math"
)

// degenerateLength is the offset magnitude below which zoom-from-distance
// has no meaning.
const degenerateLength = 1e-6

// VerticalLimits bounds the vertical component of the base offset.
type VerticalLimits struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// DefaultVerticalLimits returns the [0, 30] world unit range.
func DefaultVerticalLimits() VerticalLimits {
	return VerticalLimits{Min: 0, Max: 30}
}

// Clamp returns y saturated into [Min, Max].
func (l VerticalLimits) Clamp(y float32) float32 {
	if y > l.Max {
		return l.Max
	}
	if y < l.Min {
		return l.Min
	}
	return y
}

// ComputeOffset returns the camera offset from target and the orientation
// that looks from the camera back at the target.
//
// The base offset is collapsed toward the target by zoom, split into a pivot
// directly above or below the target at camera height and a horizontal
// residual, and the residual is rotated about the vertical axis by rotation
// radians.
func ComputeOffset(target, offset0 math.Vec3, zoom, rotation float32) (math.Vec3, math.Quat) {
	camera := target.Add(offset0.Scale(1 - zoom))
	pivot := math.Vec3{X: target.X, Y: camera.Y, Z: target.Z}
	residual := camera.Sub(pivot)

	rotated := math.QuatFromAxisAngle(math.Up, rotation).Rotate(residual)
	offset := pivot.Sub(target).Add(rotated)

	return offset, math.QuatLookRotation(offset.Neg(), math.Up)
}

// StepVerticalOffset adds delta to the vertical component of offset0,
// saturating at the limits.
func StepVerticalOffset(offset0 math.Vec3, delta float32, limits VerticalLimits) math.Vec3 {
	offset0.Y = limits.Clamp(offset0.Y + delta)
	return offset0
}

// Rotate accumulates delta radians onto angle without normalizing.
func Rotate(angle, delta float32) float32 {
	return angle + delta
}

// WrapAngle maps angle into (-π, π]. Rotation about the vertical axis is
// periodic, so the wrapped angle yields the same offset.
func WrapAngle(angle float32) float32 {
	a := gomath.Remainder(float64(angle), 2*gomath.Pi)
	if a <= -gomath.Pi {
		a += 2 * gomath.Pi
	}
	return float32(a)
}

// ZoomFromDistance returns the zoom that places the camera distance units from
// the target along the base offset. A zero-length offset yields zoom 0 and
// ErrDegenerateOffset.
func ZoomFromDistance(offset0 math.Vec3, distance float32) (float32, error) {
	length := offset0.Length()
	if length < degenerateLength {
		return 0, ErrDegenerateOffset
	}
	return (length - distance) / length, nil
}

// NaturalBoomMagnitude returns the boom length under manual zoom alone.
// Retraction probes are bounded by this length, never by the dynamic zoom.
func NaturalBoomMagnitude(offset0 math.Vec3, manualZoom float32) float32 {
	return offset0.Scale(1 - manualZoom).Length()
}

// EffectiveZoom returns the zoom in force: the dynamic level, floored at manual.
func EffectiveZoom(manual, dynamic float32) float32 {
	if dynamic < manual {
		return manual
	}
	return dynamic
}
