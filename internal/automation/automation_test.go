package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/sim"
)

func TestPointerAt(t *testing.T) {
	s := &Scenario{Frames: 100, Pointer: []Waypoint{
		{Frame: 10, X: 0, Y: 0},
		{Frame: 20, X: 100, Y: 50},
		{Frame: 20, X: 300, Y: 300},
		{Frame: 40, X: 300, Y: 100},
	}}
	tests := []struct {
		frame int
		want  field.Point
		ok    bool
	}{
		{0, field.Unset, false},
		{9, field.Unset, false},
		{10, field.Point{X: 0, Y: 0}, true},
		{15, field.Point{X: 50, Y: 25}, true},
		{20, field.Point{X: 300, Y: 300}, true},
		{30, field.Point{X: 300, Y: 200}, true},
		{99, field.Point{X: 300, Y: 100}, true},
	}
	for _, tt := range tests {
		got, ok := s.PointerAt(tt.frame)
		if ok != tt.ok || got != tt.want {
			t.Errorf("PointerAt(%d) = %+v, %v; want %+v, %v", tt.frame, got, ok, tt.want, tt.ok)
		}
	}
}

func TestViewportAt(t *testing.T) {
	s := &Scenario{
		Viewport: ViewportSpec{Width: 800, Height: 600},
		Resizes:  []ResizeEvent{{Frame: 5, Width: 400, Height: 300}},
	}
	if b := s.ViewportAt(4); b.Width != 800 {
		t.Errorf("frame 4: %+v", b)
	}
	if b := s.ViewportAt(5); b.Width != 400 || b.Height != 300 {
		t.Errorf("frame 5: %+v", b)
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	data := []byte(`name: sweep
frames: 120
viewport: {width: 640, height: 480}
pointer:
  - {frame: 60, x: 320, y: 240}
  - {frame: 10, x: 0, y: 240}
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if s.Name != "sweep" || s.Frames != 120 || s.Viewport.Width != 640 {
		t.Errorf("unexpected scenario: %+v", s)
	}
	if s.Pointer[0].Frame != 10 {
		t.Error("waypoints not sorted by frame")
	}
}

func TestLoadScenario_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("frames: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); !errors.Is(err, sim.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRun(t *testing.T) {
	b := field.Bounds{Width: 800, Height: 600}
	sc := Orbit(300, b, 120)

	res, err := Run(context.Background(), sc, sim.DefaultConfig(), metrics.Default())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Frames != 300 || len(res.Energy) != 300 || len(res.Respawns) != 300 {
		t.Errorf("frames=%d energy=%d respawns=%d, want 300 each", res.Frames, len(res.Energy), len(res.Respawns))
	}
	if len(res.Last.Commands) != 30 {
		t.Errorf("last frame has %d commands, want 30", len(res.Last.Commands))
	}
	total := 0
	for _, n := range res.Respawns {
		total += n
	}
	if float64(total) != res.Metrics["respawns"] {
		t.Errorf("respawn series sums to %d, metric says %v", total, res.Metrics["respawns"])
	}
	if res.IDsIssued != uint64(30+total) {
		t.Errorf("IDsIssued = %d, want %d", res.IDsIssued, 30+total)
	}
}

func TestRun_UnsetPointerOnlyDamps(t *testing.T) {
	sc := &Scenario{Name: "idle", Frames: 200, Viewport: ViewportSpec{Width: 800, Height: 600}}
	res, err := Run(context.Background(), sc, sim.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(res.Energy); i++ {
		if res.Energy[i] > res.Energy[i-1] {
			t.Fatalf("energy rose at frame %d without a pointer", i)
		}
	}
	if res.IDsIssued != 30 {
		t.Errorf("IDsIssued = %d, want 30", res.IDsIssued)
	}
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sc := &Scenario{Frames: 10, Viewport: ViewportSpec{Width: 10, Height: 10}}
	_, err := Run(ctx, sc, sim.DefaultConfig(), nil)
	if !errors.Is(err, sim.ErrCanceled) {
		t.Errorf("expected ErrCanceled, got %v", err)
	}
}

func TestEnsemble(t *testing.T) {
	sc := Orbit(120, field.Bounds{Width: 640, Height: 480}, 60)
	results, err := NewEnsemble(sc, 4, 100).Run(context.Background(), sim.DefaultConfig())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for i, r := range results {
		if r.Seed != int64(100+i) {
			t.Errorf("result %d seed = %d", i, r.Seed)
		}
		if r.Frames != 120 {
			t.Errorf("result %d ran %d frames", i, r.Frames)
		}
	}
}

func TestRunSweep(t *testing.T) {
	sc := Orbit(120, field.Bounds{Width: 640, Height: 480}, 60)
	results, err := RunSweep(context.Background(), sc, sim.DefaultConfig(), ParameterSweep{
		Param: "gain", Min: 0, Max: 4, NumSteps: 3,
	})
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if len(results) != 3 || results[1].ParamValue != 2 {
		t.Errorf("unexpected sweep: %+v", results)
	}

	_, err = RunSweep(context.Background(), sc, sim.DefaultConfig(), ParameterSweep{Param: "mass", NumSteps: 2})
	if !errors.Is(err, sim.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown param, got %v", err)
	}
}
