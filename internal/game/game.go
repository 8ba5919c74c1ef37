// Package game implements the follow camera frame loop.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/followcam/internal/config"
	"github.com/Faultbox/followcam/internal/controls"
	"github.com/Faultbox/followcam/internal/engine/character"
	"github.com/Faultbox/followcam/internal/engine/picking"
	"github.com/Faultbox/followcam/internal/rig"
	"github.com/Faultbox/followcam/pkg/math"
)

// Game owns one followed character, its collision scene and the camera rig
// that follows it.
type Game struct {
	source   controls.AxisSource
	camera   controls.CameraControls
	body     *character.Body
	player   *character.Character
	rig      *rig.Rig
	state    rig.State
	pose     rig.Pose
	dt       float32
	frame    int
	realtime bool
	log      *zap.Logger
}

// New builds a game from cfg. Input comes from source.
func New(cfg *config.Config, source controls.AxisSource, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if source == nil {
		log.Error("cannot start game", zap.String("missing", "axis source"))
		return nil, fmt.Errorf("game: %w: axis source", rig.ErrMissingCollaborator)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	scene, err := buildScene(cfg.Scene)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}

	model := rig.NewFollowModel(cfg.Rig.Limits)
	model.WrapRotation = cfg.Rig.WrapRotation
	probe := rig.NewRetractionProbe(scene)
	probe.Margin = cfg.Rig.Margin

	r, err := rig.New(model, probe, cfg.Rig.RetractMask(), log.Named("rig"))
	if err != nil {
		return nil, fmt.Errorf("failed to create rig: %w", err)
	}

	body := character.NewBody(cfg.Character.Start, cfg.Character.Ground())
	player := character.New(body,
		character.Gravity{FreeFallVelocity: cfg.Character.FreeFallVelocity},
		character.Steering{MaxSpeed: cfg.Character.MaxSpeed},
	)

	g := &Game{
		source: source,
		camera: controls.CameraControls{
			RotationRate: cfg.Controls.RotationRate,
			VerticalRate: cfg.Controls.VerticalRate,
		},
		body:   body,
		player: player,
		rig:    r,
		state:  cfg.Rig.Initial,
		dt:     1 / float32(cfg.Sim.FrameRate),
		log:    log,
	}
	g.pose = model.Pose(body.Position(), g.state)

	log.Info("game initialized",
		zap.Int("colliders", scene.Len()),
		zap.Float32("boom", g.state.NaturalBoomMagnitude()),
		zap.Int("frame_rate", cfg.Sim.FrameRate))
	return g, nil
}

func buildScene(cfg config.SceneConfig) (*picking.Scene, error) {
	scene, err := picking.NewScene()
	if err != nil {
		return nil, err
	}
	for _, c := range cfg.Colliders {
		if err := scene.Add(picking.Collider{
			Name:  c.Name,
			Box:   picking.BoxAt(c.Center, c.Size),
			Layer: c.Layer,
		}); err != nil {
			return nil, err
		}
	}
	return scene, nil
}

// SetRealtime paces Run to wall-clock time at the configured frame rate.
func (g *Game) SetRealtime(on bool) {
	g.realtime = on
}

// Tick advances one frame of dt seconds. It reports whether the input
// source asked to stop; no state changes on that frame.
//
// Steering uses the camera pose from the previous frame, and the rig follows
// the character's position after this frame's movement.
func (g *Game) Tick(dt float32) (quit bool) {
	axes, quit := g.source.Poll()
	if quit {
		return true
	}

	g.player.Steer(axes.Move(), g.pose.Forward(), dt)
	g.player.Fall(dt)

	rotate, vertical := g.camera.Deltas(axes, dt)
	g.state = g.rig.ApplyControls(g.state, rotate, vertical)

	g.pose, g.state = g.rig.Update(g.body.Position(), g.state)
	g.frame++
	return false
}

// Run ticks at the configured frame rate until frames have been simulated,
// the input source quits or ctx is done. frames <= 0 means no frame limit.
func (g *Game) Run(ctx context.Context, frames int) error {
	g.log.Info("starting frame loop", zap.Int("frames", frames), zap.Bool("realtime", g.realtime))

	var tick <-chan time.Time
	if g.realtime {
		ticker := time.NewTicker(time.Duration(float64(time.Second) * float64(g.dt)))
		defer ticker.Stop()
		tick = ticker.C
	}

	start := g.frame
	for frames <= 0 || g.frame-start < frames {
		if err := ctx.Err(); err != nil {
			g.log.Info("frame loop cancelled", zap.Int("frame", g.frame))
			return err
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				g.log.Info("frame loop cancelled", zap.Int("frame", g.frame))
				return ctx.Err()
			case <-tick:
			}
		}

		if g.Tick(g.dt) {
			g.log.Info("input source finished", zap.Int("frame", g.frame))
			break
		}

		// Once per simulated second
		if g.frame%int(1/g.dt+0.5) == 0 {
			g.log.Debug("status",
				zap.Int("frame", g.frame),
				zap.Stringer("target", vec(g.body.Position())),
				zap.Stringer("camera", vec(g.pose.Position)),
				zap.Float32("zoom", g.pose.Zoom),
				zap.Float32("rotation", g.state.Rotation),
				zap.Bool("obstructed", g.state.Obstructed))
		}
	}

	g.log.Info("frame loop finished", zap.Int("frames", g.frame-start))
	return nil
}

// Frame returns the number of frames simulated so far.
func (g *Game) Frame() int {
	return g.frame
}

// Pose returns the camera pose from the last frame.
func (g *Game) Pose() rig.Pose {
	return g.pose
}

// State returns the rig state from the last frame.
func (g *Game) State() rig.State {
	return g.state
}

// Target returns the followed character's position.
func (g *Game) Target() math.Vec3 {
	return g.body.Position()
}

// Grounded reports whether the character is standing on the ground.
func (g *Game) Grounded() bool {
	return g.body.IsGrounded()
}

type vec math.Vec3

func (v vec) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}
