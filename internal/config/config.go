// Package config handles follow camera configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/followcam/internal/controls"
	"github.com/Faultbox/followcam/internal/engine/character"
	"github.com/Faultbox/followcam/internal/engine/picking"
	"github.com/Faultbox/followcam/internal/engine/terrain"
	"github.com/Faultbox/followcam/internal/logger"
	"github.com/Faultbox/followcam/internal/rig"
	"github.com/Faultbox/followcam/pkg/math"
)

// WallLayer is the collision layer the default scene puts walls on.
const WallLayer = 8

// Config holds all settings.
type Config struct {
	Rig       RigConfig       `yaml:"rig"`
	Character CharacterConfig `yaml:"character"`
	Controls  ControlsConfig  `yaml:"controls"`
	Scene     SceneConfig     `yaml:"scene"`
	Sim       SimConfig       `yaml:"sim"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// RigConfig holds the follow camera boom settings.
type RigConfig struct {
	Initial       rig.State          `yaml:"initial"`
	Limits        rig.VerticalLimits `yaml:"vertical_limits"`
	RetractLayers []int              `yaml:"retract_layers"`
	Margin        float32            `yaml:"margin"`
	WrapRotation  bool               `yaml:"wrap_rotation"`
}

// RetractMask returns the layer mask built from RetractLayers.
func (r RigConfig) RetractMask() picking.LayerMask {
	var m picking.LayerMask
	for _, l := range r.RetractLayers {
		m |= picking.Layer(l)
	}
	return m
}

// CharacterConfig holds the followed character's movement settings.
type CharacterConfig struct {
	Start            math.Vec3 `yaml:"start"`
	GroundHeight     float32   `yaml:"ground_height"`
	MaxSpeed         float32   `yaml:"max_speed"`
	FreeFallVelocity float32   `yaml:"free_fall_velocity"`

	// Terrain replaces the flat ground at GroundHeight when set.
	Terrain *terrain.Heightfield `yaml:"terrain,omitempty"`
}

// Ground returns the terrain the character walks on.
func (c CharacterConfig) Ground() character.TerrainQuery {
	if c.Terrain != nil {
		return c.Terrain
	}
	return character.FlatGround(c.GroundHeight)
}

// ControlsConfig holds camera control rates and key bindings.
type ControlsConfig struct {
	RotationRate float32              `yaml:"rotation_rate"`
	VerticalRate float32              `yaml:"vertical_rate"`
	Keys         controls.KeyBindings `yaml:"keys"`
}

// ColliderConfig describes one box in the scene.
type ColliderConfig struct {
	Name   string    `yaml:"name"`
	Center math.Vec3 `yaml:"center"`
	Size   math.Vec3 `yaml:"size"`
	Layer  int       `yaml:"layer"`
}

// SceneConfig holds the static collision geometry.
type SceneConfig struct {
	Colliders []ColliderConfig `yaml:"colliders"`
}

// SimConfig holds frame loop settings.
type SimConfig struct {
	FrameRate int             `yaml:"frame_rate"`
	Frames    int             `yaml:"frames"` // 0 runs until the input source quits
	Script    []controls.Step `yaml:"script"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string            `yaml:"level"`
	File  logger.FileConfig `yaml:"file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Rig: RigConfig{
			Initial:       rig.DefaultState(),
			Limits:        rig.DefaultVerticalLimits(),
			RetractLayers: []int{WallLayer},
			Margin:        rig.DefaultMargin,
			WrapRotation:  true,
		},
		Character: CharacterConfig{
			Start:            math.Vec3{},
			GroundHeight:     0,
			MaxSpeed:         character.DefaultMaxSpeed,
			FreeFallVelocity: character.DefaultFreeFallVelocity,
		},
		Controls: ControlsConfig{
			RotationRate: controls.DefaultRotationRate,
			VerticalRate: controls.DefaultVerticalRate,
			Keys:         controls.DefaultKeyBindings(),
		},
		Scene: SceneConfig{
			Colliders: []ColliderConfig{
				{Name: "north-wall", Center: math.Vec3{Y: 3, Z: 25}, Size: math.Vec3{X: 60, Y: 6, Z: 1}, Layer: WallLayer},
				{Name: "south-wall", Center: math.Vec3{Y: 3, Z: -12}, Size: math.Vec3{X: 60, Y: 6, Z: 1}, Layer: WallLayer},
				{Name: "pillar", Center: math.Vec3{X: 8, Y: 4, Z: 6}, Size: math.Vec3{X: 2, Y: 8, Z: 2}, Layer: WallLayer},
				{Name: "crate", Center: math.Vec3{X: -4, Y: 0.5, Z: 3}, Size: math.Vec3{X: 1, Y: 1, Z: 1}, Layer: 0},
			},
		},
		Sim: SimConfig{
			FrameRate: 60,
			Script: []controls.Step{
				{Frames: 120, Axes: controls.Axes{Vertical: -1}},
				{Frames: 90, Axes: controls.Axes{Horizontal2: 1}},
				{Frames: 60, Axes: controls.Axes{Vertical2: 1}},
				{Frames: 120, Axes: controls.Axes{Horizontal: 1, Vertical: 1}},
			},
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  logger.DefaultFileConfig(""),
		},
	}
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	r := c.Rig
	check(r.Limits.Min <= r.Limits.Max, "rig.vertical_limits: min %v > max %v", r.Limits.Min, r.Limits.Max)
	check(r.Initial.ManualZoom >= 0 && r.Initial.ManualZoom <= 1, "rig.initial.manual_zoom %v outside [0,1]", r.Initial.ManualZoom)
	check(r.Initial.Offset0.Length() > 0, "rig.initial.offset must not be zero")
	check(r.Initial.Offset0.Y >= r.Limits.Min && r.Initial.Offset0.Y <= r.Limits.Max,
		"rig.initial.offset.y %v outside vertical limits [%v,%v]", r.Initial.Offset0.Y, r.Limits.Min, r.Limits.Max)
	check(r.Margin >= 1, "rig.margin %v below 1", r.Margin)
	for _, l := range r.RetractLayers {
		check(l >= 0 && l < picking.MaxLayers, "rig.retract_layers: layer %d out of range", l)
	}

	ch := c.Character
	check(ch.MaxSpeed >= 0.01 && ch.MaxSpeed <= 20, "character.max_speed %v outside [0.01,20]", ch.MaxSpeed)
	check(ch.FreeFallVelocity >= 0 && ch.FreeFallVelocity <= 100, "character.free_fall_velocity %v outside [0,100]", ch.FreeFallVelocity)
	if ch.Terrain != nil {
		if err := ch.Terrain.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("character.terrain: %w", err))
		}
	}

	ct := c.Controls
	check(ct.RotationRate >= 0.01 && ct.RotationRate <= 20, "controls.rotation_rate %v outside [0.01,20]", ct.RotationRate)
	check(ct.VerticalRate >= 0.01 && ct.VerticalRate <= 50, "controls.vertical_rate %v outside [0.01,50]", ct.VerticalRate)

	for _, col := range c.Scene.Colliders {
		check(col.Layer >= 0 && col.Layer < picking.MaxLayers, "scene collider %q: layer %d out of range", col.Name, col.Layer)
	}

	check(c.Sim.FrameRate > 0, "sim.frame_rate must be positive")
	check(c.Sim.Frames >= 0, "sim.frames must not be negative")

	return errors.Join(errs...)
}
