package metrics

import (
	"github.com/san-kum/driftfield/internal/sim"
)

// Containment is the fraction of observed particle positions that lay
// inside the viewport. Reflection does not clamp, so a particle can sit a
// frame or two outside the edge before it comes back.
type Containment struct {
	name    string
	escaped int
	samples int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string { return c.name }

func (c *Containment) Observe(f sim.Frame) {
	for _, p := range f.Particles {
		c.samples++
		if !f.Bounds.Contains(p.X, p.Y) {
			c.escaped++
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.escaped)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.escaped = 0
	c.samples = 0
}

// Default returns the metrics attached to every run.
func Default() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewMeanSpeed(),
		NewRespawns(),
		NewContainment(),
	}
}
