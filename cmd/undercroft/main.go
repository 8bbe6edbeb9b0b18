// Package main is the entry point for Undercroft.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/undercroft/internal/config"
	"github.com/samdwyer/undercroft/internal/game"
	"github.com/samdwyer/undercroft/internal/telemetry"
	"github.com/samdwyer/undercroft/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "undercroft: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path := os.Getenv(config.EnvConfig)
	if path == "" {
		path = "undercroft.toml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.Dataset)
		if err != nil {
			// Game still works without observability
			log.Warn("telemetry setup failed", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Warn("telemetry shutdown failed", zap.Error(err))
				}
			}()
		}
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}

	g, err := game.New(cfg.Game, log, screen)
	if err != nil {
		screen.Close()
		return fmt.Errorf("initialize game: %w", err)
	}
	log.Info("starting", zap.Int64("seed", g.Seed()), zap.String("config", path))

	return g.Run(ctx)
}

// newLogger builds a zap logger writing to cfg.File. The terminal is owned
// by the UI, so nothing is logged to stdout or stderr.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{cfg.File}
	zapCfg.ErrorOutputPaths = []string{cfg.File}

	return zapCfg.Build()
}
