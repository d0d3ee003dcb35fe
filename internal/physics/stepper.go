package physics

import (
	"math"

	"github.com/san-kum/driftfield/internal/field"
)

// Spawner produces the replacement for a destroyed particle.
type Spawner interface {
	Generate(b field.Bounds) field.Particle
}

// Report summarizes one step.
type Report struct {
	Respawned int
	Destroyed []uint64
}

// Stepper advances every particle by one frame. Particles do not interact;
// each one is moved using only its own state, the pointer and the bounds.
type Stepper struct {
	tuning  Tuning
	spawner Spawner
}

func NewStepper(t Tuning, s Spawner) *Stepper {
	return &Stepper{tuning: t, spawner: s}
}

func (s *Stepper) Tuning() Tuning { return s.tuning }

// Step returns the next generation of particles, slot for slot.
func (s *Stepper) Step(particles []field.Particle, ptr field.Point, b field.Bounds) ([]field.Particle, Report) {
	next := make([]field.Particle, len(particles))
	var rep Report
	for i, p := range particles {
		np, destroyed := s.Advance(p, ptr, b)
		if destroyed {
			rep.Respawned++
			rep.Destroyed = append(rep.Destroyed, p.ID)
		}
		next[i] = np
	}
	return next, rep
}

// Advance moves a single particle. When the pointer lies inside the
// particle's radius the particle is replaced by a fresh one, which is not
// moved until the next frame.
//
// Reflection is tested against the integrated position and turns the
// stored, damped velocity back toward the viewport. For a particle that
// just crossed an edge this is a plain negation; a particle still outside
// but already heading in keeps its direction, so damping cannot trap it
// past the edge. Positions are not clamped.
func (s *Stepper) Advance(p field.Particle, ptr field.Point, b field.Bounds) (field.Particle, bool) {
	dx := ptr.X - p.X
	dy := ptr.Y - p.Y
	d := math.Hypot(dx, dy)

	if !ptr.IsUnset() && d < p.Radius() {
		return s.spawner.Generate(b), true
	}

	var ax, ay float64
	if ptr.X > 0 && d > s.tuning.DeadZone {
		force := 1 / math.Max(s.tuning.ForceFloor, d)
		ax = dx / d * force * s.tuning.Gain
		ay = dy / d * force * s.tuning.Gain
	}

	vx := (p.VX + ax) * s.tuning.Damping
	vy := (p.VY + ay) * s.tuning.Damping

	x := p.X + vx
	y := p.Y + vy

	switch {
	case x < 0:
		vx = math.Abs(vx)
	case x > b.Width:
		vx = -math.Abs(vx)
	}
	switch {
	case y < 0:
		vy = math.Abs(vy)
	case y > b.Height:
		vy = -math.Abs(vy)
	}

	p.X, p.Y = x, y
	p.VX, p.VY = vx, vy
	return p, false
}
