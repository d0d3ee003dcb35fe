package sim

import (
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/physics"
)

// Frame is the outcome of one step, handed to renderers and observers.
type Frame struct {
	Index     uint64
	Bounds    field.Bounds
	Pointer   field.Point
	Particles []field.Particle
	Commands  []field.DrawCommand
	Respawned int
}

type Renderer interface {
	Render(f Frame)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(f Frame)

func (fn RendererFunc) Render(f Frame) { fn(f) }

type Observer interface {
	OnFrame(f Frame)
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

const DefaultParticles = 30

type Config struct {
	Particles int
	Seed      int64
	Spawn     field.SpawnRange
	Tuning    physics.Tuning
}

func DefaultConfig() Config {
	return Config{
		Particles: DefaultParticles,
		Seed:      1,
		Spawn:     field.DefaultSpawnRange(),
		Tuning:    physics.DefaultTuning(),
	}
}
