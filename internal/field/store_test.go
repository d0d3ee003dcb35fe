package field

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStore_New(t *testing.T) {
	gen := NewGenerator(1, DefaultSpawnRange())
	s := NewStore(30, gen, Bounds{Width: 800, Height: 600})

	if s.Len() != 30 {
		t.Fatalf("Len() = %d, want 30", s.Len())
	}
	seen := make(map[uint64]bool)
	for _, p := range s.Particles() {
		if seen[p.ID] {
			t.Fatalf("duplicate id %d", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestStore_ParticlesIsCopy(t *testing.T) {
	gen := NewGenerator(1, DefaultSpawnRange())
	s := NewStore(3, gen, Bounds{Width: 100, Height: 100})

	ps := s.Particles()
	ps[0].X = -999
	if s.At(0).X == -999 {
		t.Error("Particles() exposed the internal slice")
	}
}

func TestStore_Replace(t *testing.T) {
	gen := NewGenerator(1, DefaultSpawnRange())
	s := NewStore(3, gen, Bounds{Width: 100, Height: 100})

	next := s.Particles()
	next[1].X = 42
	if err := s.Replace(next); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if s.At(1).X != 42 {
		t.Errorf("slot 1 x = %f, want 42", s.At(1).X)
	}

	err := s.Replace(next[:2])
	if !errors.Is(err, ErrPoolSize) {
		t.Errorf("expected ErrPoolSize, got %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("failed replace changed Len() to %d", s.Len())
	}
}

func TestStore_DrawCommands(t *testing.T) {
	s := &Store{particles: []Particle{
		{ID: 4, X: 10, Y: 20, VX: 1, VY: 1, Size: 40, Opacity: 1},
		{ID: 9, X: 30, Y: 40, Size: 60, Opacity: 1},
	}}

	want := []DrawCommand{
		{ID: 4, X: 10, Y: 20, Diameter: 40, Opacity: 1},
		{ID: 9, X: 30, Y: 40, Diameter: 60, Opacity: 1},
	}
	if diff := cmp.Diff(want, s.DrawCommands()); diff != "" {
		t.Errorf("DrawCommands() mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_Scatter(t *testing.T) {
	gen := NewGenerator(2, DefaultSpawnRange())
	s := NewStore(10, gen, Bounds{})
	for _, p := range s.Particles() {
		if p.X != 0 || p.Y != 0 {
			t.Fatalf("expected degenerate placement, got (%f, %f)", p.X, p.Y)
		}
	}

	b := Bounds{Width: 500, Height: 400}
	s.Scatter(gen, b)
	moved := 0
	for _, p := range s.Particles() {
		if !b.Contains(p.X, p.Y) {
			t.Fatalf("particle %d outside viewport after scatter", p.ID)
		}
		if p.X != 0 || p.Y != 0 {
			moved++
		}
	}
	if moved == 0 {
		t.Error("scatter left every particle at the origin")
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		b          Bounds
		degenerate bool
	}{
		{Bounds{}, true},
		{Bounds{Width: 10}, true},
		{Bounds{Height: 10}, true},
		{Bounds{Width: 10, Height: 10}, false},
	}
	for _, tt := range tests {
		if got := tt.b.Degenerate(); got != tt.degenerate {
			t.Errorf("%+v.Degenerate() = %v, want %v", tt.b, got, tt.degenerate)
		}
	}
}

func TestPoint_IsUnset(t *testing.T) {
	if !Unset.IsUnset() {
		t.Error("Unset.IsUnset() = false")
	}
	if (Point{X: 0, Y: 0}).IsUnset() {
		t.Error("origin reported as unset")
	}
}
