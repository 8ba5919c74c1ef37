package rig

import (
	"github.com/Faultbox/followcam/pkg/math"
)

// State is the per-rig data the host threads from frame to frame.
type State struct {
	Offset0    math.Vec3 `yaml:"offset"`      // Unzoomed offset from target to camera
	ManualZoom float32   `yaml:"manual_zoom"` // Zoom floor, normally in [0, 1]
	Rotation   float32   `yaml:"rotation"`    // Radians about the target's vertical axis

	// Set by retraction each frame.
	DynamicZoom float32 `yaml:"-"`
	Obstructed  bool    `yaml:"-"`
}

// DefaultState returns a camera 8 units up and 20 behind the target.
func DefaultState() State {
	return State{
		Offset0: math.Vec3{X: 0, Y: 8, Z: -20},
	}
}

// Zoom returns the effective zoom level.
func (s State) Zoom() float32 {
	return EffectiveZoom(s.ManualZoom, s.DynamicZoom)
}

// NaturalBoomMagnitude returns the boom length under manual zoom alone.
func (s State) NaturalBoomMagnitude() float32 {
	return NaturalBoomMagnitude(s.Offset0, s.ManualZoom)
}

// Pose is a computed camera placement.
type Pose struct {
	Position    math.Vec3 // World position
	Offset      math.Vec3 // Position relative to the target
	Orientation math.Quat // Forward axis points at the target
	Zoom        float32   // Effective zoom the pose was computed with
}

// Forward returns the camera viewing direction.
func (p Pose) Forward() math.Vec3 {
	return p.Orientation.Forward()
}

// ViewMatrix returns the view matrix for a renderer.
func (p Pose) ViewMatrix() math.Mat4 {
	return math.LookAt(p.Position, p.Position.Add(p.Forward()), math.Up)
}

// WorldMatrix returns the camera-to-world transform.
func (p Pose) WorldMatrix() math.Mat4 {
	return math.Translate(p.Position).Mul(p.Orientation.ToMat4())
}

// FollowModel holds the static configuration of the offset model.
type FollowModel struct {
	Limits VerticalLimits

	// WrapRotation keeps the accumulated rotation in (-π, π].
	WrapRotation bool
}

// NewFollowModel creates a model with the given vertical limits and rotation
// wrapping enabled.
func NewFollowModel(limits VerticalLimits) *FollowModel {
	return &FollowModel{
		Limits:       limits,
		WrapRotation: true,
	}
}

// Pose computes the camera placement for target under st.
func (m *FollowModel) Pose(target math.Vec3, st State) Pose {
	zoom := st.Zoom()
	offset, look := ComputeOffset(target, st.Offset0, zoom, st.Rotation)
	return Pose{
		Position:    target.Add(offset),
		Offset:      offset,
		Orientation: look,
		Zoom:        zoom,
	}
}

// StepVertical moves the base offset up or down within the limits.
func (m *FollowModel) StepVertical(st State, delta float32) State {
	st.Offset0 = StepVerticalOffset(st.Offset0, delta, m.Limits)
	return st
}

// Turn rotates the camera about the target.
func (m *FollowModel) Turn(st State, delta float32) State {
	st.Rotation = Rotate(st.Rotation, delta)
	if m.WrapRotation {
		st.Rotation = WrapAngle(st.Rotation)
	}
	return st
}

// Retract sets the dynamic zoom so the camera sits distance units from the
// target. On a degenerate offset the dynamic zoom is reset to 0 and the error
// is returned alongside the updated state.
func (m *FollowModel) Retract(st State, distance float32) (State, error) {
	zoom, err := ZoomFromDistance(st.Offset0, distance)
	st.DynamicZoom = zoom
	return st, err
}
