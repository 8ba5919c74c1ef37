package character

import (
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/followcam/pkg/math"
)

func TestGravityVelocity(t *testing.T) {
	g := Gravity{FreeFallVelocity: DefaultFreeFallVelocity}
	assert.Equal(t, math.Vec3{}, g.Velocity(true))
	assert.Equal(t, math.Vec3{Y: -9.81}, g.Velocity(false))
}

func TestViewHeading(t *testing.T) {
	tests := []struct {
		name    string
		forward math.Vec3
		want    float64
	}{
		{"world forward", math.Vec3{Z: 1}, 0},
		{"looking right", math.Vec3{X: 1}, gomath.Pi / 2},
		{"looking back and down", math.Vec3{Y: -8, Z: -20}, gomath.Pi},
		{"follow camera default", math.Vec3{Y: -8, Z: 20}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ViewHeading(tt.forward), 1e-5)
		})
	}
}

func TestCameraToWorld(t *testing.T) {
	// Pushing forward while the camera looks along +X moves along +X.
	got := CameraToWorld(math.Vec3{Z: 1}, float32(gomath.Pi/2))
	assert.True(t, got.ApproxEqual(math.Vec3{X: 1}, 1e-5), "got %v", got)
}

func TestSteeringClampsInput(t *testing.T) {
	s := Steering{MaxSpeed: DefaultMaxSpeed}
	forward := math.Vec3{Y: -8, Z: 20}

	v, _, turned := s.Velocity(math.Vec2{X: 1, Y: 1}, forward)
	require.True(t, turned)
	assert.InDelta(t, 3, v.Length(), 1e-5, "diagonal input is not faster")

	v, _, _ = s.Velocity(math.Vec2{Y: 0.5}, forward)
	assert.InDelta(t, 1.5, v.Length(), 1e-5)
	assert.InDelta(t, 0, v.Y, 1e-6)
}

func TestSteeringDeadZoneKeepsFacing(t *testing.T) {
	s := Steering{MaxSpeed: DefaultMaxSpeed}
	v, _, turned := s.Velocity(math.Vec2{}, math.Vec3{Z: 1})
	assert.False(t, turned)
	assert.Equal(t, math.Vec3{}, v)
}

func TestBodyLandsOnTerrain(t *testing.T) {
	b := NewBody(math.Vec3{Y: 2}, FlatGround(0))
	require.False(t, b.IsGrounded())

	c := New(b, Gravity{FreeFallVelocity: DefaultFreeFallVelocity}, Steering{MaxSpeed: DefaultMaxSpeed})
	c.Fall(0.1)
	assert.False(t, b.IsGrounded())
	assert.InDelta(t, 2-0.981, b.Position().Y, 1e-5)

	for i := 0; i < 10; i++ {
		c.Fall(0.1)
	}
	assert.True(t, b.IsGrounded())
	assert.Equal(t, float32(0), b.Position().Y)

	// Once grounded gravity stops pulling.
	c.Fall(0.1)
	assert.Equal(t, float32(0), b.Position().Y)
}

func TestBodyWithoutTerrainNeverLands(t *testing.T) {
	b := NewBody(math.Vec3{}, nil)
	c := New(b, Gravity{FreeFallVelocity: 1}, Steering{})
	c.Fall(1)
	c.Fall(1)
	assert.False(t, b.IsGrounded())
	assert.Equal(t, float32(-2), b.Position().Y)
}

func TestCharacterSteer(t *testing.T) {
	b := NewBody(math.Vec3{}, FlatGround(0))
	c := New(b, Gravity{FreeFallVelocity: DefaultFreeFallVelocity}, Steering{MaxSpeed: 2})

	// Camera behind the character looking along +Z; push forward for 1s.
	c.Steer(math.Vec2{Y: 1}, math.Vec3{Y: -8, Z: 20}, 1)
	assert.True(t, b.Position().ApproxEqual(math.Vec3{Z: 2}, 1e-5), "position %v", b.Position())
	assert.True(t, b.Facing().Forward().ApproxEqual(math.Vec3{Z: 1}, 1e-5))
	assert.True(t, b.IsGrounded())

	// Releasing the stick keeps the last facing.
	facing := b.Facing()
	c.Steer(math.Vec2{}, math.Vec3{X: 1}, 1)
	assert.Equal(t, facing, b.Facing())
	assert.True(t, b.Position().ApproxEqual(math.Vec3{Z: 2}, 1e-5))
}
