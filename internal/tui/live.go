package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/driftfield/internal/sim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer streams frames of a headless run to a plain terminal as
// ANSI-refreshed character art. It is a sim.Observer and drops frames
// that arrive faster than frameRate.
type LiveRenderer struct {
	out       io.Writer
	title     string
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
	drawn     int
}

func NewLiveRenderer(out io.Writer, title string, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		out:       out,
		title:     title,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

func (r *LiveRenderer) OnFrame(f sim.Frame) {
	if r.frameRate > 0 {
		elapsed := time.Since(r.lastFrame)
		if elapsed < time.Second/time.Duration(r.frameRate) {
			return
		}
	}
	r.lastFrame = time.Now()

	r.clear()
	r.drawParticles(f)
	r.render(f)
	r.drawn++
}

// Drawn reports how many frames were actually written.
func (r *LiveRenderer) Drawn() int { return r.drawn }

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// cell scales a viewport position onto the character grid.
func cell(x, y float64, f sim.Frame) (int, int) {
	if f.Bounds.Degenerate() {
		return -1, -1
	}
	cx := int(math.Floor(x / f.Bounds.Width * width))
	cy := int(math.Floor(y / f.Bounds.Height * height))
	return cx, cy
}

// glyph picks a character by particle diameter.
func glyph(diameter float64) rune {
	switch {
	case diameter < 40:
		return '.'
	case diameter < 60:
		return 'o'
	case diameter < 80:
		return 'O'
	default:
		return '@'
	}
}

func (r *LiveRenderer) drawParticles(f sim.Frame) {
	for _, c := range f.Commands {
		x, y := cell(c.X, c.Y, f)
		r.set(x, y, glyph(c.Diameter))
	}
	if !f.Pointer.IsUnset() {
		x, y := cell(f.Pointer.X, f.Pointer.Y, f)
		r.set(x, y, '+')
	}
}

func (r *LiveRenderer) render(f sim.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  frame=%d\n", r.title, f.Index))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  particles=%d respawned=%d viewport=%.0fx%.0f\n",
		len(f.Particles), f.Respawned, f.Bounds.Width, f.Bounds.Height))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
