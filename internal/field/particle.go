package field

import "math"

type Particle struct {
	ID      uint64
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
}

// Radius is the hit radius used for pointer collisions.
func (p Particle) Radius() float64 { return p.Size / 2 }

func (p Particle) Speed() float64 { return math.Hypot(p.VX, p.VY) }

// DistanceTo returns the Euclidean distance from the particle center to pt.
func (p Particle) DistanceTo(pt Point) float64 {
	return math.Hypot(pt.X-p.X, pt.Y-p.Y)
}

func (p Particle) Draw() DrawCommand {
	return DrawCommand{ID: p.ID, X: p.X, Y: p.Y, Diameter: p.Size, Opacity: p.Opacity}
}

type Point struct {
	X, Y float64
}

// Unset marks a pointer that has never moved.
var Unset = Point{X: -1, Y: -1}

func (p Point) IsUnset() bool { return p == Unset }

type Bounds struct {
	Width, Height float64
}

// Degenerate reports whether the viewport has not been measured yet.
func (b Bounds) Degenerate() bool { return b.Width <= 0 || b.Height <= 0 }

func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// DrawCommand describes one filled circle. ID is a stable key for
// incremental redraw and never affects how the circle looks.
type DrawCommand struct {
	ID       uint64
	X, Y     float64
	Diameter float64
	Opacity  float64
}
