package config

import (
	"sort"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/physics"
)

func preset(mutate func(c *Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"calm": preset(func(c *Config) {
		c.Tuning.Gain = 0.5
		c.Tuning.Damping = 0.99
		c.Spawn.Speed = 0.1
		c.Theme = "ocean"
	}),
	"swarm": preset(func(c *Config) {
		c.Particles = 80
		c.Spawn = field.SpawnRange{SizeMin: 10, SizeMax: 40, Speed: 0.5}
		c.Tuning = physics.Tuning{DeadZone: 60, ForceFloor: 60, Gain: 4, Damping: 0.97}
		c.Theme = "neon"
	}),
	"still": preset(func(c *Config) {
		c.Spawn.Speed = 0
		c.Theme = "phosphor"
	}),
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
