// Package pointer tracks the last observed pointer position.
package pointer

import "github.com/san-kum/driftfield/internal/field"

// Tracker holds the most recent pointer coordinates. It starts at
// [field.Unset] and is overwritten by every input event; coordinates are
// stored as given, without clamping.
type Tracker struct {
	pos   field.Point
	moves uint64
}

func NewTracker() *Tracker {
	return &Tracker{pos: field.Unset}
}

func (t *Tracker) Set(x, y float64) {
	t.pos = field.Point{X: x, Y: y}
	t.moves++
}

func (t *Tracker) Current() field.Point { return t.pos }

// Moved reports whether Set has been called at least once.
func (t *Tracker) Moved() bool { return t.moves > 0 }

// Moves counts input events seen so far.
func (t *Tracker) Moves() uint64 { return t.moves }
