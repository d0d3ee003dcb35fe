package sim

import (
	"fmt"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/physics"
	"github.com/san-kum/driftfield/internal/pointer"
)

// Simulation owns everything one particle field needs between frames: the
// particle store, the pointer, the id generator and the last viewport.
// It is not safe for concurrent use; hosts deliver input and frames on a
// single goroutine.
type Simulation struct {
	store    *field.Store
	tracker  *pointer.Tracker
	gen      *field.Generator
	stepper  *physics.Stepper
	bounds   field.Bounds
	frame    uint64
	unplaced bool

	observers []Observer
	metrics   []Metric
}

func Validate(cfg Config) error {
	if cfg.Particles <= 0 {
		return fmt.Errorf("%w: particles must be positive, got %d", ErrInvalidConfig, cfg.Particles)
	}
	if cfg.Spawn.SizeMin <= 0 || cfg.Spawn.SizeMax <= cfg.Spawn.SizeMin {
		return fmt.Errorf("%w: size range [%g, %g) is empty", ErrInvalidConfig, cfg.Spawn.SizeMin, cfg.Spawn.SizeMax)
	}
	if cfg.Spawn.Speed < 0 {
		return fmt.Errorf("%w: spawn speed must not be negative, got %g", ErrInvalidConfig, cfg.Spawn.Speed)
	}
	if cfg.Tuning.Damping <= 0 || cfg.Tuning.Damping > 1 {
		return fmt.Errorf("%w: damping must be in (0, 1], got %g", ErrInvalidConfig, cfg.Tuning.Damping)
	}
	if cfg.Tuning.ForceFloor <= 0 {
		return fmt.Errorf("%w: force floor must be positive, got %g", ErrInvalidConfig, cfg.Tuning.ForceFloor)
	}
	if cfg.Tuning.DeadZone < 0 {
		return fmt.Errorf("%w: dead zone must not be negative, got %g", ErrInvalidConfig, cfg.Tuning.DeadZone)
	}
	return nil
}

// New seeds a field of cfg.Particles particles inside b. When b has not
// been measured yet the particles start at the origin and are scattered on
// the first step that sees a real viewport.
func New(cfg Config, b field.Bounds) (*Simulation, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	gen := field.NewGenerator(cfg.Seed, cfg.Spawn)
	return &Simulation{
		store:    field.NewStore(cfg.Particles, gen, b),
		tracker:  pointer.NewTracker(),
		gen:      gen,
		stepper:  physics.NewStepper(cfg.Tuning, gen),
		bounds:   b,
		unplaced: b.Degenerate(),
	}, nil
}

func (s *Simulation) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulation) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Simulation) SetPointer(x, y float64) { s.tracker.Set(x, y) }

func (s *Simulation) Pointer() field.Point { return s.tracker.Current() }

func (s *Simulation) Tracker() *pointer.Tracker { return s.tracker }

func (s *Simulation) Bounds() field.Bounds { return s.bounds }

func (s *Simulation) Len() int { return s.store.Len() }

// Frames counts completed steps.
func (s *Simulation) Frames() uint64 { return s.frame }

// IDsIssued counts particle ids handed out, including respawns.
func (s *Simulation) IDsIssued() uint64 { return s.gen.Issued() }

func (s *Simulation) Particles() []field.Particle { return s.store.Particles() }

// Step advances the field by one frame using the current pointer and the
// viewport b, then notifies metrics and observers.
func (s *Simulation) Step(b field.Bounds) Frame {
	s.bounds = b
	if s.unplaced && !b.Degenerate() {
		s.store.Scatter(s.gen, b)
		s.unplaced = false
	}

	ptr := s.tracker.Current()
	next, rep := s.stepper.Step(s.store.Particles(), ptr, b)
	// Step preserves length, so Replace cannot fail here.
	_ = s.store.Replace(next)
	s.frame++

	f := Frame{
		Index:     s.frame,
		Bounds:    b,
		Pointer:   ptr,
		Particles: next,
		Commands:  s.store.DrawCommands(),
		Respawned: rep.Respawned,
	}
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnFrame(f)
	}
	return f
}

// Snapshot returns the current field as a frame without stepping it.
func (s *Simulation) Snapshot() Frame {
	return Frame{
		Index:     s.frame,
		Bounds:    s.bounds,
		Pointer:   s.tracker.Current(),
		Particles: s.store.Particles(),
		Commands:  s.store.DrawCommands(),
	}
}

// Metrics returns the current value of every registered metric.
func (s *Simulation) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Simulation) ResetMetrics() {
	for _, m := range s.metrics {
		m.Reset()
	}
}
