// Package controls maps per-frame input axes onto character and camera
// deltas.
package controls

import (
	"github.com/Faultbox/followcam/pkg/math"
)

// Axes holds one frame of analog input, each axis in [-1, 1].
type Axes struct {
	Horizontal  float32 `yaml:"horizontal"`  // Character strafe
	Vertical    float32 `yaml:"vertical"`    // Character forward/back
	Horizontal2 float32 `yaml:"horizontal2"` // Camera rotation
	Vertical2   float32 `yaml:"vertical2"`   // Camera height
}

// Move returns the character input vector.
func (a Axes) Move() math.Vec2 {
	return math.Vec2{X: a.Horizontal, Y: a.Vertical}
}

// AxisSource supplies input once per frame.
type AxisSource interface {
	// Poll returns this frame's axes. quit is true when the user asked to stop.
	Poll() (axes Axes, quit bool)
}

// Default camera control rates.
const (
	DefaultRotationRate = 3.5  // rad/s
	DefaultVerticalRate = 10.0 // world units/s
)

// CameraControls converts the second pair of axes into rig deltas.
type CameraControls struct {
	RotationRate float32
	VerticalRate float32
}

// Deltas returns the rotation and vertical offset steps for a frame of dt seconds.
func (c CameraControls) Deltas(axes Axes, dt float32) (rotate, vertical float32) {
	return axes.Horizontal2 * dt * c.RotationRate, axes.Vertical2 * dt * c.VerticalRate
}

// AxisKeys binds the two ends of one axis to key names.
type AxisKeys struct {
	Negative string `yaml:"negative"`
	Positive string `yaml:"positive"`
}

// KeyBindings maps every axis to a pair of keys, by key name.
type KeyBindings struct {
	Horizontal  AxisKeys `yaml:"horizontal"`
	Vertical    AxisKeys `yaml:"vertical"`
	Horizontal2 AxisKeys `yaml:"horizontal2"`
	Vertical2   AxisKeys `yaml:"vertical2"`
}

// DefaultKeyBindings uses WASD for the character and the arrow keys for the
// camera.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Horizontal:  AxisKeys{Negative: "A", Positive: "D"},
		Vertical:    AxisKeys{Negative: "S", Positive: "W"},
		Horizontal2: AxisKeys{Negative: "Left", Positive: "Right"},
		Vertical2:   AxisKeys{Negative: "Down", Positive: "Up"},
	}
}

// DigitalAxis returns -1, 0 or 1 from the state of a key pair.
func DigitalAxis(negative, positive bool) float32 {
	var v float32
	if positive {
		v++
	}
	if negative {
		v--
	}
	return v
}
