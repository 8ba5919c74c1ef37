package character

import (
	"github.com/Faultbox/followcam/pkg/math"
)

// DefaultFreeFallVelocity is the default constant fall speed in world units
// per second.
const DefaultFreeFallVelocity = 9.81

// Gravity pulls an airborne character down at a constant speed.
type Gravity struct {
	FreeFallVelocity float32
}

// Velocity returns the vertical velocity to apply for this tick.
func (g Gravity) Velocity(grounded bool) math.Vec3 {
	if grounded {
		return math.Vec3{}
	}
	return math.Vec3{Y: -g.FreeFallVelocity}
}

// Character drives a Controller with gravity and camera-relative steering.
type Character struct {
	ctrl     Controller
	Gravity  Gravity
	Steering Steering
}

// New creates a character around ctrl.
func New(ctrl Controller, gravity Gravity, steering Steering) *Character {
	return &Character{
		ctrl:     ctrl,
		Gravity:  gravity,
		Steering: steering,
	}
}

// Steer moves the character for one frame from view-frame input.
func (c *Character) Steer(input math.Vec2, cameraForward math.Vec3, dt float32) {
	velocity, facing, turned := c.Steering.Velocity(input, cameraForward)
	c.ctrl.SimpleMove(velocity, dt)
	if turned {
		c.ctrl.SetFacing(facing)
	}
}

// Fall applies one fixed step of gravity.
func (c *Character) Fall(dt float32) {
	c.ctrl.SimpleMove(c.Gravity.Velocity(c.ctrl.IsGrounded()), dt)
}
