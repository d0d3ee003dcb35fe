package field

import "math/rand"

const (
	DefaultSizeMin = 20.0
	DefaultSizeMax = 100.0
	DefaultSpeed   = 0.25
)

// SpawnRange bounds the random draws of a freshly generated particle.
type SpawnRange struct {
	SizeMin float64 `yaml:"size_min"`
	SizeMax float64 `yaml:"size_max"`
	Speed   float64 `yaml:"speed"`
}

func DefaultSpawnRange() SpawnRange {
	return SpawnRange{
		SizeMin: DefaultSizeMin,
		SizeMax: DefaultSizeMax,
		Speed:   DefaultSpeed,
	}
}

// Generator creates particles. Ids start at zero and increase by one on
// every call to NextID for the lifetime of the generator; they are never
// reset or reused.
type Generator struct {
	rng   *rand.Rand
	spawn SpawnRange
	next  uint64
}

func NewGenerator(seed int64, spawn SpawnRange) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		spawn: spawn,
	}
}

func (g *Generator) NextID() uint64 {
	id := g.next
	g.next++
	return id
}

// Issued returns how many ids have been handed out so far.
func (g *Generator) Issued() uint64 { return g.next }

// Generate draws a new particle inside b. A degenerate viewport yields a
// particle at the origin; see Scatter.
func (g *Generator) Generate(b Bounds) Particle {
	p := Particle{
		ID:      g.NextID(),
		VX:      (g.rng.Float64() - 0.5) * 2 * g.spawn.Speed,
		VY:      (g.rng.Float64() - 0.5) * 2 * g.spawn.Speed,
		Size:    g.spawn.SizeMin + g.rng.Float64()*(g.spawn.SizeMax-g.spawn.SizeMin),
		Opacity: 1,
	}
	g.Scatter(&p, b)
	return p
}

// Scatter redraws the position of p inside b, leaving identity, velocity
// and size untouched.
func (g *Generator) Scatter(p *Particle, b Bounds) {
	p.X = g.rng.Float64() * max(b.Width, 0)
	p.Y = g.rng.Float64() * max(b.Height, 0)
}
