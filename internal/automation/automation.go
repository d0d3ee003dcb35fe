package automation

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/sim"
)

// Scenario scripts a headless run: how long it lasts, the viewport, and
// where the pointer goes.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Frames      int           `yaml:"frames"`
	Viewport    ViewportSpec  `yaml:"viewport"`
	Resizes     []ResizeEvent `yaml:"resizes"`
	Pointer     []Waypoint    `yaml:"pointer"`
}

type ViewportSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ResizeEvent changes the viewport from Frame onward.
type ResizeEvent struct {
	Frame  int     `yaml:"frame"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Waypoint pins the pointer at (X, Y) on Frame. Between waypoints the
// pointer moves linearly; before the first one it has not moved yet.
type Waypoint struct {
	Frame int     `yaml:"frame"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	scenario.normalize()

	return &scenario, nil
}

func (s *Scenario) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("%w: scenario frames must be positive, got %d", sim.ErrInvalidConfig, s.Frames)
	}
	if s.Viewport.Width < 0 || s.Viewport.Height < 0 {
		return fmt.Errorf("%w: negative viewport", sim.ErrInvalidConfig)
	}
	for _, w := range s.Pointer {
		if w.Frame < 0 {
			return fmt.Errorf("%w: waypoint frame %d", sim.ErrInvalidConfig, w.Frame)
		}
	}
	return nil
}

func (s *Scenario) normalize() {
	sort.SliceStable(s.Pointer, func(i, j int) bool { return s.Pointer[i].Frame < s.Pointer[j].Frame })
	sort.SliceStable(s.Resizes, func(i, j int) bool { return s.Resizes[i].Frame < s.Resizes[j].Frame })
}

// PointerAt returns the scripted pointer position for frame, and false
// while the pointer has not moved yet.
func (s *Scenario) PointerAt(frame int) (field.Point, bool) {
	if len(s.Pointer) == 0 || frame < s.Pointer[0].Frame {
		return field.Unset, false
	}
	for i := 1; i < len(s.Pointer); i++ {
		a, b := s.Pointer[i-1], s.Pointer[i]
		if frame >= b.Frame {
			continue
		}
		span := float64(b.Frame - a.Frame)
		if span == 0 {
			return field.Point{X: b.X, Y: b.Y}, true
		}
		t := float64(frame-a.Frame) / span
		return field.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}, true
	}
	last := s.Pointer[len(s.Pointer)-1]
	return field.Point{X: last.X, Y: last.Y}, true
}

// ViewportAt returns the viewport in effect on frame.
func (s *Scenario) ViewportAt(frame int) field.Bounds {
	b := field.Bounds{Width: s.Viewport.Width, Height: s.Viewport.Height}
	for _, r := range s.Resizes {
		if r.Frame > frame {
			break
		}
		b = field.Bounds{Width: r.Width, Height: r.Height}
	}
	return b
}

// Orbit builds a scenario whose pointer circles the viewport center once
// every period frames, starting after a short idle.
func Orbit(frames int, b field.Bounds, period int) *Scenario {
	s := &Scenario{
		Name:        "orbit",
		Description: "pointer circles the center of the viewport",
		Frames:      frames,
		Viewport:    ViewportSpec{Width: b.Width, Height: b.Height},
	}
	if period <= 0 {
		period = 240
	}
	cx, cy := b.Width/2, b.Height/2
	r := math.Min(b.Width, b.Height) / 3
	const idle = 30
	for f := idle; f <= frames; f += 10 {
		theta := 2 * math.Pi * float64(f-idle) / float64(period)
		s.Pointer = append(s.Pointer, Waypoint{
			Frame: f,
			X:     cx + r*math.Cos(theta),
			Y:     cy + r*math.Sin(theta),
		})
	}
	return s
}

// Result holds the outcome of one headless run.
type Result struct {
	Scenario  string
	Seed      int64
	Frames    int
	Energy    []float64
	Respawns  []int
	Metrics   map[string]float64
	Last      sim.Frame
	IDsIssued uint64
}

// Run plays scenario against a fresh simulation built from cfg. Metrics
// and observers are attached before the first frame.
func Run(ctx context.Context, scenario *Scenario, cfg sim.Config, ms []sim.Metric, observers ...sim.Observer) (*Result, error) {
	s, err := sim.New(cfg, scenario.ViewportAt(0))
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		m.Reset()
		s.AddMetric(m)
	}
	for _, o := range observers {
		s.AddObserver(o)
	}

	result := &Result{
		Scenario: scenario.Name,
		Seed:     cfg.Seed,
		Energy:   make([]float64, 0, scenario.Frames),
		Respawns: make([]int, 0, scenario.Frames),
	}

	host := sim.NewLocalHost(scenario.ViewportAt(0))
	sched := sim.NewScheduler(s, host, sim.RendererFunc(func(f sim.Frame) {
		result.Energy = append(result.Energy, metrics.FieldEnergy(f))
		result.Respawns = append(result.Respawns, f.Respawned)
		result.Last = f
	}))
	sched.Start()
	defer sched.Stop()

	for i := 0; i < scenario.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Frames = int(s.Frames())
			return result, fmt.Errorf("%w after %d frames: %v", sim.ErrCanceled, s.Frames(), ctx.Err())
		default:
		}

		host.SetViewport(scenario.ViewportAt(i))
		if p, ok := scenario.PointerAt(i); ok {
			host.MovePointer(p.X, p.Y)
		}
		host.Flush()
	}

	result.Frames = int(s.Frames())
	result.Metrics = s.Metrics()
	result.IDsIssued = s.IDsIssued()
	return result, nil
}
