package character

import (
	gomath "math"

	"github.com/Faultbox/followcam/pkg/math"
)

// DefaultMaxSpeed is the default top speed in world units per second.
const DefaultMaxSpeed = 3.0

// inputDeadZone is the input magnitude below which facing is left unchanged.
const inputDeadZone = 1e-5

// Steering turns control input expressed in the camera's view frame into a
// world-space velocity.
type Steering struct {
	MaxSpeed float32
}

// ViewHeading returns the angle about the vertical axis between world +Z and
// the camera's forward direction, in radians.
func ViewHeading(forward math.Vec3) float32 {
	return float32(gomath.Atan2(float64(forward.X), float64(forward.Z)))
}

// CameraToWorld rotates a view-frame vector into world space about the
// vertical axis by heading radians.
func CameraToWorld(v math.Vec3, heading float32) math.Vec3 {
	return math.RotateY(heading).TransformDirection(v)
}

// Velocity returns the world velocity for input (X strafe, Y forward) seen
// from a camera facing cameraForward. Input longer than 1 is clamped. turned
// reports whether facing is meaningful; it is false inside the dead zone.
func (s Steering) Velocity(input math.Vec2, cameraForward math.Vec3) (velocity math.Vec3, facing math.Quat, turned bool) {
	view := input.OnGround()
	scale := view.Length()
	if scale > 1 {
		scale = 1
	}

	world := CameraToWorld(view, ViewHeading(cameraForward))
	velocity = world.Normalize().Scale(s.MaxSpeed * scale)

	if view.Length() <= inputDeadZone {
		return velocity, math.QuatIdentity(), false
	}
	return velocity, math.QuatLookRotation(world, math.Up), true
}
