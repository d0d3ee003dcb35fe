package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/physics"
	"github.com/san-kum/driftfield/internal/sim"
)

const (
	DefaultParticles = sim.DefaultParticles
	DefaultSeed      = 1
	DefaultFPS       = 60
	DefaultTheme     = "minimal"
	DefaultWidth     = 1280.0
	DefaultHeight    = 720.0
)

type Config struct {
	Particles int              `yaml:"particles"`
	Seed      int64            `yaml:"seed"`
	FPS       int              `yaml:"fps"`
	Theme     string           `yaml:"theme"`
	Audio     bool             `yaml:"audio"`
	Spawn     field.SpawnRange `yaml:"spawn"`
	Tuning    physics.Tuning   `yaml:"tuning"`
	Viewport  ViewportConfig   `yaml:"viewport"`
}

// ViewportConfig is the window size of the graphical host and the fixed
// viewport of headless runs. The terminal host measures its own.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles: DefaultParticles,
		Seed:      DefaultSeed,
		FPS:       DefaultFPS,
		Theme:     DefaultTheme,
		Spawn:     field.DefaultSpawnRange(),
		Tuning:    physics.DefaultTuning(),
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadInto(path, DefaultConfig())
}

// LoadInto reads path over a copy of base: keys the file sets win, the
// rest keep base's values. base is not modified.
func LoadInto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve layers the named preset (the defaults when empty) under the
// file at path (skipped when empty).
func Resolve(preset, path string) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" {
		if cfg = GetPreset(preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, ListPresets())
		}
	}
	if path == "" {
		return cfg, nil
	}
	loaded, err := LoadInto(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return loaded, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := sim.Validate(c.Sim()); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", sim.ErrInvalidConfig, c.FPS)
	}
	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("%w: viewport %gx%g", sim.ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	return nil
}

// Sim returns the simulation part of the config.
func (c *Config) Sim() sim.Config {
	return sim.Config{
		Particles: c.Particles,
		Seed:      c.Seed,
		Spawn:     c.Spawn,
		Tuning:    c.Tuning,
	}
}

func (c *Config) Bounds() field.Bounds {
	return field.Bounds{Width: c.Viewport.Width, Height: c.Viewport.Height}
}

// Clone returns a deep copy; presets are shared and must not be mutated.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
