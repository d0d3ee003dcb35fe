package export

import (
	"strings"
	"testing"

	"github.com/san-kum/driftfield/internal/analysis"
	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/sim"
	"github.com/san-kum/driftfield/internal/viz"
)

func TestFrameToSVG(t *testing.T) {
	f := sim.Frame{
		Bounds:  field.Bounds{Width: 640, Height: 480},
		Pointer: field.Point{X: 10, Y: 20},
		Commands: []field.DrawCommand{
			{ID: 3, X: 100, Y: 50, Diameter: 40, Opacity: 1},
			{ID: 9, X: 300, Y: 200, Diameter: 80, Opacity: 1},
		},
	}
	svg := FrameToSVG(f, viz.ThemeMinimal)

	if !strings.Contains(svg, `viewBox="0 0 640 480"`) {
		t.Error("viewBox should match the frame bounds")
	}
	if got := strings.Count(svg, `<circle id="p`); got != 2 {
		t.Errorf("expected 2 particle circles, got %d", got)
	}
	if !strings.Contains(svg, `<circle id="p3" cx="100.0" cy="50.0" r="20.0"`) {
		t.Error("particle 3 drawn with wrong geometry")
	}
	if !strings.Contains(svg, `cx="10.0" cy="20.0" r="4"`) {
		t.Error("pointer marker missing")
	}
}

func TestFrameToSVGSkipsUnsetPointer(t *testing.T) {
	f := sim.Frame{Bounds: field.Bounds{Width: 10, Height: 10}, Pointer: field.Unset}
	if strings.Contains(FrameToSVG(f, viz.ThemeMinimal), `r="4"`) {
		t.Error("unset pointer should not be drawn")
	}
	if FrameToSVG(sim.Frame{}, viz.ThemeMinimal) != "" {
		t.Error("degenerate frame should produce no SVG")
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2, viz.ThemeMinimal)
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 dots, got %d", got)
	}
}

func TestTraceToSVGBreaksOnRespawn(t *testing.T) {
	tr := &analysis.Trace{
		Bounds: field.Bounds{Width: 100, Height: 100},
		Points: []analysis.TracePoint{
			{X: 1, Y: 1, ID: 0},
			{X: 2, Y: 2, ID: 0},
			{X: 50, Y: 50, ID: 30},
			{X: 51, Y: 51, ID: 30},
		},
	}
	svg := TraceToSVG(tr, "#ffffff")
	if got := strings.Count(svg, "M"); got != 2 {
		t.Errorf("expected 2 subpaths, got %d", got)
	}
	if TraceToSVG(&analysis.Trace{}, "#fff") != "" {
		t.Error("empty trace should produce no SVG")
	}
}
