package sim

import (
	"sort"

	"github.com/san-kum/driftfield/internal/field"
)

// LocalHost is an in-process Host. Frame callbacks queue until Flush and
// pointer moves are dispatched synchronously, so whoever owns the host
// decides the cadence: a Bubble Tea tick, a raylib loop, or a test.
type LocalHost struct {
	bounds field.Bounds

	nextFrame FrameID
	frames    map[FrameID]func()

	nextListener int
	listeners    map[int]func(x, y float64)
}

func NewLocalHost(b field.Bounds) *LocalHost {
	return &LocalHost{
		bounds:    b,
		frames:    make(map[FrameID]func()),
		listeners: make(map[int]func(x, y float64)),
	}
}

func (h *LocalHost) RequestFrame(fn func()) FrameID {
	h.nextFrame++
	h.frames[h.nextFrame] = fn
	return h.nextFrame
}

func (h *LocalHost) CancelFrame(id FrameID) { delete(h.frames, id) }

// Flush fires every callback queued before the call, in request order.
// Callbacks requested while flushing wait for the next Flush.
func (h *LocalHost) Flush() int {
	if len(h.frames) == 0 {
		return 0
	}
	ids := make([]FrameID, 0, len(h.frames))
	for id := range h.frames {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fired := 0
	for _, id := range ids {
		fn, ok := h.frames[id]
		if !ok {
			continue
		}
		delete(h.frames, id)
		fn()
		fired++
	}
	return fired
}

// PendingFrames counts queued frame callbacks.
func (h *LocalHost) PendingFrames() int { return len(h.frames) }

func (h *LocalHost) SubscribePointer(fn func(x, y float64)) func() {
	h.nextListener++
	id := h.nextListener
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

// MovePointer delivers a pointer event to every subscriber.
func (h *LocalHost) MovePointer(x, y float64) {
	for _, fn := range h.listeners {
		fn(x, y)
	}
}

// Listeners counts active pointer subscriptions.
func (h *LocalHost) Listeners() int { return len(h.listeners) }

func (h *LocalHost) SetViewport(b field.Bounds) { h.bounds = b }

func (h *LocalHost) Viewport() field.Bounds { return h.bounds }
