// Package config loads the engine's TOML configuration and YAML data tables.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

var ErrInvalid = errors.New("invalid config")

// Backends accepted by window.backend.
var Backends = []string{"ebiten", "raylib", "terminal", "headless"}

type Config struct {
	Window    WindowConfig    `toml:"window"`
	Physics   PhysicsConfig   `toml:"physics"`
	Logging   LoggingConfig   `toml:"logging"`
	Particles ParticlesConfig `toml:"particles"`
	Script    ScriptConfig    `toml:"script"`
	Audio     AudioConfig     `toml:"audio"`
	Debug     DebugConfig     `toml:"debug"`
}

type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	TargetFPS int    `toml:"target_fps"`
	Backend   string `toml:"backend"` // ebiten, raylib, terminal or headless
}

type PhysicsConfig struct {
	Restitution float64 `toml:"restitution"`
	DebugDraw   bool    `toml:"debug_draw"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // log destination, stderr when empty
}

type ParticlesConfig struct {
	Presets string `toml:"presets"` // path to a YAML preset table, empty for none
}

type ScriptConfig struct {
	Dir string `toml:"dir"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type DebugConfig struct {
	ImGui bool `toml:"imgui"`
	Stats bool `toml:"stats"`
}

// Load reads path over the defaults. Keys missing from the file keep their
// default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q: %w", undecoded[0].String(), ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:     "lumen",
			Width:     800,
			Height:    600,
			TargetFPS: 60,
			Backend:   "ebiten",
		},
		Physics: PhysicsConfig{
			Restitution: 0.8,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Script: ScriptConfig{
			Dir: "scripts",
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// Validate reports every invalid field, not just the first.
func (c *Config) Validate() error {
	var err error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid))
	}
	if c.Window.TargetFPS <= 0 {
		err = multierr.Append(err, fmt.Errorf("window.target_fps %d: %w", c.Window.TargetFPS, ErrInvalid))
	}
	if !slices.Contains(Backends, c.Window.Backend) {
		err = multierr.Append(err, fmt.Errorf("window.backend %q: %w", c.Window.Backend, ErrInvalid))
	}
	if c.Physics.Restitution < 0 {
		err = multierr.Append(err, fmt.Errorf("physics.restitution %g: %w", c.Physics.Restitution, ErrInvalid))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		err = multierr.Append(err, fmt.Errorf("logging.format %q: %w", c.Logging.Format, ErrInvalid))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		err = multierr.Append(err, fmt.Errorf("audio.volume %g: %w", c.Audio.Volume, ErrInvalid))
	}
	return err
}

// FrameInterval is the wall time of one frame at the target rate, in seconds.
func (w WindowConfig) FrameInterval() float64 {
	if w.TargetFPS <= 0 {
		return 1.0 / 60
	}
	return 1 / float64(w.TargetFPS)
}
