package field

import "fmt"

// Store owns the particle pool of one simulation. Its length is fixed at
// construction; particles are only ever replaced slot by slot.
type Store struct {
	particles []Particle
}

func NewStore(n int, gen *Generator, b Bounds) *Store {
	particles := make([]Particle, n)
	for i := range particles {
		particles[i] = gen.Generate(b)
	}
	return &Store{particles: particles}
}

func (s *Store) Len() int { return len(s.particles) }

func (s *Store) At(i int) Particle { return s.particles[i] }

// Particles returns a copy of the pool in slot order.
func (s *Store) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Replace swaps in the next generation of particles. The pool size must
// not change.
func (s *Store) Replace(next []Particle) error {
	if len(next) != len(s.particles) {
		return fmt.Errorf("%w: have %d, got %d", ErrPoolSize, len(s.particles), len(next))
	}
	copy(s.particles, next)
	return nil
}

// Scatter redraws every particle position inside b.
func (s *Store) Scatter(gen *Generator, b Bounds) {
	for i := range s.particles {
		gen.Scatter(&s.particles[i], b)
	}
}

func (s *Store) DrawCommands() []DrawCommand {
	cmds := make([]DrawCommand, len(s.particles))
	for i, p := range s.particles {
		cmds[i] = p.Draw()
	}
	return cmds
}
