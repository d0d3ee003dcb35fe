package sim

import (
	"errors"
	"testing"

	"github.com/san-kum/driftfield/internal/field"
)

var testBounds = field.Bounds{Width: 800, Height: 600}

func newTestSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := New(DefaultConfig(), testBounds)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestNew_DefaultPool(t *testing.T) {
	s := newTestSim(t)
	if s.Len() != 30 {
		t.Errorf("Len() = %d, want 30", s.Len())
	}
	if s.Pointer() != field.Unset {
		t.Errorf("Pointer() = %+v, want unset", s.Pointer())
	}
	if s.IDsIssued() != 30 {
		t.Errorf("IDsIssued() = %d, want 30", s.IDsIssued())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero particles", func(c *Config) { c.Particles = 0 }},
		{"negative particles", func(c *Config) { c.Particles = -3 }},
		{"inverted sizes", func(c *Config) { c.Spawn.SizeMin, c.Spawn.SizeMax = 100, 20 }},
		{"zero size", func(c *Config) { c.Spawn.SizeMin = 0 }},
		{"negative speed", func(c *Config) { c.Spawn.Speed = -1 }},
		{"zero damping", func(c *Config) { c.Tuning.Damping = 0 }},
		{"amplifying damping", func(c *Config) { c.Tuning.Damping = 1.01 }},
		{"zero force floor", func(c *Config) { c.Tuning.ForceFloor = 0 }},
		{"negative dead zone", func(c *Config) { c.Tuning.DeadZone = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := New(cfg, testBounds); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("default config rejected: %v", err)
	}
}

func TestStep_PoolSizeInvariant(t *testing.T) {
	s := newTestSim(t)
	for k := 0; k < 1000; k++ {
		if k%7 == 0 {
			s.SetPointer(float64(k%800), float64(k%600))
		}
		f := s.Step(testBounds)
		if len(f.Commands) != 30 || len(f.Particles) != 30 || s.Len() != 30 {
			t.Fatalf("frame %d: pool size changed", k)
		}
	}
	if s.Frames() != 1000 {
		t.Errorf("Frames() = %d, want 1000", s.Frames())
	}
}

func TestStep_IndependentSimulationsDoNotShareIDs(t *testing.T) {
	a := newTestSim(t)
	b := newTestSim(t)
	a.SetPointer(a.Particles()[0].X, a.Particles()[0].Y)
	a.Step(testBounds)

	if a.IDsIssued() <= 30 {
		t.Errorf("a issued %d ids, want a respawn beyond 30", a.IDsIssued())
	}
	if b.IDsIssued() != 30 {
		t.Errorf("b issued %d ids, want 30", b.IDsIssued())
	}
}

func TestStep_RespawnUsesFreshID(t *testing.T) {
	s := newTestSim(t)
	target := s.Particles()[4]
	s.SetPointer(target.X, target.Y)

	f := s.Step(testBounds)

	if f.Respawned < 1 {
		t.Fatalf("expected at least one respawn, got %d", f.Respawned)
	}
	got := s.Particles()[4]
	if got.ID == target.ID {
		t.Error("slot 4 kept its id after the pointer touched it")
	}
	if got.ID < 30 {
		t.Errorf("replacement id %d reuses an initial id", got.ID)
	}
}

func TestStep_ScattersAfterFirstMeasurement(t *testing.T) {
	s, err := New(DefaultConfig(), field.Bounds{})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range s.Particles() {
		if p.X != 0 || p.Y != 0 {
			t.Fatalf("unmeasured viewport placed particle at (%f, %f)", p.X, p.Y)
		}
	}

	// Still unmeasured: degenerate but no panic.
	s.Step(field.Bounds{})

	ids := map[uint64]bool{}
	for _, p := range s.Particles() {
		ids[p.ID] = true
	}

	s.Step(testBounds)
	spread := 0
	for _, p := range s.Particles() {
		if !ids[p.ID] {
			t.Errorf("scatter changed identity of a particle: %d", p.ID)
		}
		if p.X > 2 || p.Y > 2 {
			spread++
		}
	}
	if spread == 0 {
		t.Error("particles were not scattered once the viewport was measured")
	}
}

type countingMetric struct {
	frames    int
	respawned int
}

func (c *countingMetric) Name() string { return "count" }
func (c *countingMetric) Observe(f Frame) {
	c.frames++
	c.respawned += f.Respawned
}
func (c *countingMetric) Value() float64 { return float64(c.frames) }
func (c *countingMetric) Reset()         { *c = countingMetric{} }

type recordingObserver struct{ indices []uint64 }

func (r *recordingObserver) OnFrame(f Frame) { r.indices = append(r.indices, f.Index) }

func TestStep_NotifiesMetricsAndObservers(t *testing.T) {
	s := newTestSim(t)
	m := &countingMetric{}
	o := &recordingObserver{}
	s.AddMetric(m)
	s.AddObserver(o)

	for i := 0; i < 5; i++ {
		s.Step(testBounds)
	}

	if got := s.Metrics()["count"]; got != 5 {
		t.Errorf("metric value = %v, want 5", got)
	}
	if len(o.indices) != 5 || o.indices[0] != 1 || o.indices[4] != 5 {
		t.Errorf("observer saw frames %v", o.indices)
	}

	s.ResetMetrics()
	if m.frames != 0 {
		t.Error("ResetMetrics did not reset")
	}
}

func TestSnapshot_DoesNotStep(t *testing.T) {
	s := newTestSim(t)
	before := s.Particles()
	f := s.Snapshot()
	if f.Index != 0 || s.Frames() != 0 {
		t.Error("Snapshot advanced the frame counter")
	}
	for i, p := range s.Particles() {
		if p != before[i] {
			t.Fatal("Snapshot moved particles")
		}
	}
	if len(f.Commands) != 30 {
		t.Errorf("snapshot has %d commands, want 30", len(f.Commands))
	}
}
