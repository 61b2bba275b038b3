package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/herdsync/herdsync/internal/core/steering"
)

// Config is the host configuration: gateway settings, arena geometry
// and optional steering overrides.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	ArenaWidth  float64 `yaml:"arena_width"`
	ArenaHeight float64 `yaml:"arena_height"`

	// TickRate is simulation ticks per second.
	TickRate int `yaml:"tick_rate"`

	// Seed makes level generation and per-tick noise reproducible.
	// Empty means a fresh run each start.
	Seed string `yaml:"seed"`

	// NarrationURL points at an optional narration endpoint. Empty
	// disables remote narration; the local fallback table is used.
	NarrationURL     string        `yaml:"narration_url"`
	NarrationTimeout time.Duration `yaml:"narration_timeout"`

	LogLevel string `yaml:"log_level"`

	Tuning steering.Tuning `yaml:"tuning"`
}

// Default returns the shipped configuration.
func Default() Config {
	return Config{
		ListenAddr:       "127.0.0.1:8090",
		ArenaWidth:       800,
		ArenaHeight:      600,
		TickRate:         60,
		NarrationTimeout: 2 * time.Second,
		LogLevel:         "info",
		Tuning:           steering.DefaultTuning(),
	}
}

// Load reads a yaml config file over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err = cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.ArenaWidth <= 0 || c.ArenaHeight <= 0 {
		return fmt.Errorf("arena size must be positive, got %gx%g", c.ArenaWidth, c.ArenaHeight)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	return nil
}

// TickInterval converts the tick rate to a frame duration.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
