// Package config loads game settings from a TOML file, a .env file and the
// environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables that override file settings.
const (
	EnvSeed     = "UNDERCROFT_SEED"
	EnvLogLevel = "UNDERCROFT_LOG_LEVEL"
	EnvConfig   = "UNDERCROFT_CONFIG"
)

// Config is the full set of settings, one section per TOML table.
type Config struct {
	Game      GameConfig      `toml:"game"`
	Logging   LoggingConfig   `toml:"logging"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

// GameConfig holds the settings that shape each run and level.
type GameConfig struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed        int64 `toml:"seed"`
	// Map size in cells.
	Width       int   `toml:"width"`
	Height      int   `toml:"height"`
	// Manhattan sight radius on dark levels.
	LightRadius int   `toml:"light_radius"`
	// Upper bounds on spawns per level.
	Monsters    int   `toml:"monsters_per_level"`
	Containers  int   `toml:"containers_per_level"`
}

// LoggingConfig controls the zap logger built by the entry point.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // log destination; the terminal belongs to the UI
}

// TelemetryConfig controls trace export. Dataset names the Honeycomb dataset.
type TelemetryConfig struct {
	Enabled bool   `toml:"enabled"`
	Dataset string `toml:"dataset"`
}

// Load reads path when it exists, then applies .env and environment
// overrides. A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Not fatal - env vars might be set directly
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s=%q: %w", EnvSeed, v, err)
		}
		c.Game.Seed = seed
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Game.Width < 5 || c.Game.Height < 5 {
		return fmt.Errorf("map %dx%d is smaller than the smallest room", c.Game.Width, c.Game.Height)
	}
	if c.Game.LightRadius < 0 {
		return fmt.Errorf("light radius %d is negative", c.Game.LightRadius)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Width:       80,
			Height:      40,
			LightRadius: 8,
			Monsters:    6,
			Containers:  4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "undercroft.log",
		},
		Telemetry: TelemetryConfig{
			Dataset: "undercroft",
		},
	}
}
