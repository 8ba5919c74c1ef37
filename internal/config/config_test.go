package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/followcam/internal/engine/picking"
	"github.com/Faultbox/followcam/internal/engine/terrain"
	"github.com/Faultbox/followcam/pkg/math"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Rig.Initial.Offset0 != (math.Vec3{Y: 8, Z: -20}) {
		t.Errorf("expected offset (0,8,-20), got %+v", cfg.Rig.Initial.Offset0)
	}
	if cfg.Rig.Limits.Min != 0 || cfg.Rig.Limits.Max != 30 {
		t.Errorf("expected vertical limits [0,30], got %+v", cfg.Rig.Limits)
	}
	if !cfg.Rig.WrapRotation {
		t.Error("expected wrap_rotation to be true by default")
	}
	if cfg.Rig.RetractMask() != picking.Layer(WallLayer) {
		t.Errorf("expected retract mask for layer %d, got %b", WallLayer, cfg.Rig.RetractMask())
	}

	if cfg.Character.MaxSpeed != 3 {
		t.Errorf("expected max speed 3, got %f", cfg.Character.MaxSpeed)
	}
	if cfg.Controls.Keys.Vertical.Positive != "W" {
		t.Errorf("expected W for forward, got %s", cfg.Controls.Keys.Vertical.Positive)
	}

	if cfg.Sim.FrameRate != 60 {
		t.Errorf("expected frame rate 60, got %d", cfg.Sim.FrameRate)
	}
	if len(cfg.Sim.Script) == 0 {
		t.Error("expected a default script")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.File.Path != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.File.Path)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
rig:
  initial:
    offset: {x: 0, y: 4, z: -12}
    manual_zoom: 0.25
  vertical_limits:
    min: 1
    max: 10
  retract_layers: [3, 5]

character:
  max_speed: 6

scene:
  colliders:
    - name: wall
      center: {x: 0, y: 2, z: -8}
      size: {x: 10, y: 4, z: 1}
      layer: 3

sim:
  frames: 30
  script:
    - frames: 30
      axes: {vertical2: 1}

logging:
  level: "debug"
  file:
    path: "followcam.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Rig.Initial.Offset0 != (math.Vec3{Y: 4, Z: -12}) {
		t.Errorf("expected offset (0,4,-12), got %+v", cfg.Rig.Initial.Offset0)
	}
	if cfg.Rig.Initial.ManualZoom != 0.25 {
		t.Errorf("expected manual zoom 0.25, got %f", cfg.Rig.Initial.ManualZoom)
	}
	if cfg.Rig.Limits.Min != 1 || cfg.Rig.Limits.Max != 10 {
		t.Errorf("expected vertical limits [1,10], got %+v", cfg.Rig.Limits)
	}
	if want := picking.Layer(3) | picking.Layer(5); cfg.Rig.RetractMask() != want {
		t.Errorf("expected mask %b, got %b", want, cfg.Rig.RetractMask())
	}
	// Keys not in the file keep their defaults
	if !cfg.Rig.WrapRotation {
		t.Error("expected wrap_rotation default to survive")
	}
	if cfg.Character.MaxSpeed != 6 {
		t.Errorf("expected max speed 6, got %f", cfg.Character.MaxSpeed)
	}
	if cfg.Character.FreeFallVelocity != 9.81 {
		t.Errorf("expected default free fall, got %f", cfg.Character.FreeFallVelocity)
	}

	if len(cfg.Scene.Colliders) != 1 || cfg.Scene.Colliders[0].Name != "wall" {
		t.Fatalf("expected the file's collider list to replace defaults, got %+v", cfg.Scene.Colliders)
	}
	if cfg.Scene.Colliders[0].Size != (math.Vec3{X: 10, Y: 4, Z: 1}) {
		t.Errorf("unexpected collider size %+v", cfg.Scene.Colliders[0].Size)
	}

	if cfg.Sim.Frames != 30 || len(cfg.Sim.Script) != 1 || cfg.Sim.Script[0].Axes.Vertical2 != 1 {
		t.Errorf("unexpected sim section %+v", cfg.Sim)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.File.Path != "followcam.log" {
		t.Errorf("expected log file 'followcam.log', got %s", cfg.Logging.File.Path)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should be valid: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
rig:
  margin: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"inverted limits", func(c *Config) { c.Rig.Limits.Min = 40 }, "vertical_limits"},
		{"zoom above one", func(c *Config) { c.Rig.Initial.ManualZoom = 1.5 }, "manual_zoom"},
		{"zero offset", func(c *Config) { c.Rig.Initial.Offset0 = math.Vec3{} }, "offset must not be zero"},
		{"offset above limits", func(c *Config) { c.Rig.Initial.Offset0.Y = 31 }, "offset.y"},
		{"margin below one", func(c *Config) { c.Rig.Margin = 0.5 }, "margin"},
		{"retract layer", func(c *Config) { c.Rig.RetractLayers = []int{32} }, "retract_layers"},
		{"max speed", func(c *Config) { c.Character.MaxSpeed = 0 }, "max_speed"},
		{"free fall", func(c *Config) { c.Character.FreeFallVelocity = -1 }, "free_fall_velocity"},
		{"rotation rate", func(c *Config) { c.Controls.RotationRate = 25 }, "rotation_rate"},
		{"vertical rate", func(c *Config) { c.Controls.VerticalRate = 0 }, "vertical_rate"},
		{"collider layer", func(c *Config) { c.Scene.Colliders[0].Layer = -1 }, "north-wall"},
		{"frame rate", func(c *Config) { c.Sim.FrameRate = 0 }, "frame_rate"},
		{"frames", func(c *Config) { c.Sim.Frames = -2 }, "sim.frames"},
		{"terrain", func(c *Config) { c.Character.Terrain = &terrain.Heightfield{CellSize: 1} }, "character.terrain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Character.MaxSpeed = 0
	cfg.Sim.FrameRate = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "max_speed") || !strings.Contains(msg, "frame_rate") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "followcam.yaml")
	if err := os.WriteFile(configPath, []byte("sim:\n  frames: 10\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find followcam.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "log file flag",
			setup: func() { *flagLogFile = "run.log" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.File.Path != "run.log" {
					t.Errorf("expected log file run.log, got %s", cfg.Logging.File.Path)
				}
			},
			teardown: func() { *flagLogFile = "" },
		},
		{
			name:  "frames flag",
			setup: func() { *flagFrames = 500 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Sim.Frames != 500 {
					t.Errorf("expected 500 frames, got %d", cfg.Sim.Frames)
				}
			},
			teardown: func() { *flagFrames = -1 },
		},
		{
			name:  "frames flag unset",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Sim.Frames != 0 {
					t.Errorf("expected default frames, got %d", cfg.Sim.Frames)
				}
			},
			teardown: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
sim:
  frame_rate: 30
  frames: 90
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagFrames = 10
	defer func() {
		*flagConfig = ""
		*flagFrames = -1
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Frames from the flag, frame rate from the file
	if cfg.Sim.Frames != 10 {
		t.Errorf("expected 10 frames from flag, got %d", cfg.Sim.Frames)
	}
	if cfg.Sim.FrameRate != 30 {
		t.Errorf("expected frame rate 30 from file, got %d", cfg.Sim.FrameRate)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("rig:\n  margin: 0.2\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject an invalid config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Rig.Initial.Rotation = 1.5
	cfg.Controls.Keys.Vertical2.Positive = "PageUp"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Rig.Initial.Rotation != 1.5 {
		t.Errorf("expected rotation 1.5, got %f", loaded.Rig.Initial.Rotation)
	}
	if loaded.Controls.Keys.Vertical2.Positive != "PageUp" {
		t.Errorf("expected PageUp binding, got %s", loaded.Controls.Keys.Vertical2.Positive)
	}
	if len(loaded.Scene.Colliders) != len(cfg.Scene.Colliders) {
		t.Errorf("expected %d colliders, got %d", len(cfg.Scene.Colliders), len(loaded.Scene.Colliders))
	}
}

func TestTerrainFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
character:
  terrain:
    cell_size: 5
    heights:
      - [0, 1]
      - [2, 3]
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if cfg.Character.Ground().GetHeight(3, 3) != 0 {
		t.Error("expected flat ground by default")
	}
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid terrain: %v", err)
	}
	if got := cfg.Character.Ground().GetHeight(5, 5); got != 3 {
		t.Errorf("expected height 3 at the far corner, got %v", got)
	}
}
