// Package character provides gravity and camera-relative steering for a
// third-person character.
package character

import (
	"github.com/Faultbox/followcam/pkg/math"
)

// TerrainQuery provides ground information for character movement.
type TerrainQuery interface {
	// GetHeight returns the ground height at the given world position.
	GetHeight(worldX, worldZ float32) float32
}

// FlatGround is a level ground plane at a fixed height.
type FlatGround float32

// GetHeight implements TerrainQuery.
func (g FlatGround) GetHeight(worldX, worldZ float32) float32 {
	return float32(g)
}

// Controller is the minimal character controller the steering and gravity
// behaviors drive.
type Controller interface {
	// SimpleMove moves by velocity over dt seconds and resolves grounding.
	SimpleMove(velocity math.Vec3, dt float32)
	// IsGrounded reports whether the last move ended on the ground.
	IsGrounded() bool
	// SetFacing orients the character.
	SetFacing(q math.Quat)
}

// Body is a kinematic point body resting on a terrain.
type Body struct {
	position math.Vec3
	facing   math.Quat
	grounded bool
	terrain  TerrainQuery
}

// NewBody places a body at position. A nil terrain means the body never lands.
func NewBody(position math.Vec3, terrain TerrainQuery) *Body {
	b := &Body{
		position: position,
		facing:   math.QuatIdentity(),
		terrain:  terrain,
	}
	if terrain != nil {
		b.grounded = position.Y <= terrain.GetHeight(position.X, position.Z)
	}
	return b
}

// SimpleMove implements Controller.
func (b *Body) SimpleMove(velocity math.Vec3, dt float32) {
	next := b.position.Add(velocity.Scale(dt))

	b.grounded = false
	if b.terrain != nil {
		ground := b.terrain.GetHeight(next.X, next.Z)
		if next.Y <= ground {
			next.Y = ground
			b.grounded = true
		}
	}
	b.position = next
}

// IsGrounded implements Controller.
func (b *Body) IsGrounded() bool {
	return b.grounded
}

// SetFacing implements Controller.
func (b *Body) SetFacing(q math.Quat) {
	b.facing = q
}

// Position returns the body's world position.
func (b *Body) Position() math.Vec3 {
	return b.position
}

// Facing returns the body's orientation.
func (b *Body) Facing() math.Quat {
	return b.facing
}
