package analysis

import (
	"strings"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/sim"
)

type TracePoint struct {
	X, Y float64
	ID   uint64
}

// Trace is the path of one store slot over a run. A slot changes identity
// when its particle is respawned; Respawns counts those changes.
type Trace struct {
	Slot     int
	Bounds   field.Bounds
	Points   []TracePoint
	Respawns int
}

// TraceRecorder observes frames and records the position held by one slot.
type TraceRecorder struct {
	trace Trace
}

func NewTraceRecorder(slot int) *TraceRecorder {
	return &TraceRecorder{trace: Trace{Slot: slot}}
}

func (r *TraceRecorder) OnFrame(f sim.Frame) {
	if r.trace.Slot < 0 || r.trace.Slot >= len(f.Particles) {
		return
	}
	p := f.Particles[r.trace.Slot]
	if n := len(r.trace.Points); n > 0 && r.trace.Points[n-1].ID != p.ID {
		r.trace.Respawns++
	}
	r.trace.Bounds = f.Bounds
	r.trace.Points = append(r.trace.Points, TracePoint{X: p.X, Y: p.Y, ID: p.ID})
}

func (r *TraceRecorder) Trace() *Trace { return &r.trace }

// TraceToASCII plots a trace inside its viewport. Screen y grows
// downward, as in the viewport itself. Points of earlier identities of the
// slot are drawn fainter than the current one.
func TraceToASCII(trace *Trace, width, height int) string {
	if trace == nil || len(trace.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	b := trace.Bounds
	if b.Degenerate() {
		b = field.Bounds{Width: 1, Height: 1}
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	last := trace.Points[len(trace.Points)-1].ID
	for _, p := range trace.Points {
		col := int(p.X / b.Width * float64(width-1))
		row := int(p.Y / b.Height * float64(height-1))
		if row < 0 || row >= height || col < 0 || col >= width {
			continue
		}
		if p.ID == last {
			canvas[row][col] = '•'
		} else if canvas[row][col] == ' ' {
			canvas[row][col] = '·'
		}
	}

	var sb strings.Builder
	sb.WriteString("┌" + strings.Repeat("─", width) + "┐\n")
	for _, row := range canvas {
		sb.WriteString("│")
		sb.WriteString(string(row))
		sb.WriteString("│\n")
	}
	sb.WriteString("└" + strings.Repeat("─", width) + "┘\n")
	return sb.String()
}
