// Package main is the entry point for the follow camera simulator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/followcam/internal/config"
	"github.com/Faultbox/followcam/internal/controls"
	"github.com/Faultbox/followcam/internal/engine/input"
	"github.com/Faultbox/followcam/internal/game"
	"github.com/Faultbox/followcam/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.InitWithOptions(logger.Options{
		Level:   cfg.Logging.Level,
		Console: true,
		File:    cfg.Logging.File,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Follow Camera ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var source controls.AxisSource
	if config.Interactive() {
		kb, err := input.NewKeyboard("followcam", cfg.Controls.Keys)
		if err != nil {
			return fmt.Errorf("failed to open keyboard: %w", err)
		}
		defer kb.Close()
		source = kb
	} else {
		script := controls.NewScript(cfg.Sim.Script...)
		logger.Info("running script", zap.Int("steps", len(cfg.Sim.Script)), zap.Int("frames", script.Frames()))
		source = script
	}

	g, err := game.New(cfg, source, logger.Named("game"))
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	g.SetRealtime(config.Interactive())

	if err := g.Run(ctx, cfg.Sim.Frames); err != nil && ctx.Err() == nil {
		return err
	}

	pose := g.Pose()
	st := g.State()
	logger.Info("final pose",
		zap.Int("frames", g.Frame()),
		zap.Any("target", g.Target()),
		zap.Any("camera", pose.Position),
		zap.Any("forward", pose.Forward()),
		zap.Float32("zoom", pose.Zoom),
		zap.Float32("rotation", st.Rotation),
		zap.Bool("obstructed", st.Obstructed))
	return nil
}
