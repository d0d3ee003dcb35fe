package sim

import "github.com/san-kum/driftfield/internal/field"

// FrameID identifies a pending frame callback.
type FrameID uint64

// FrameRequester is the host's single-shot frame primitive: a registered
// callback fires once and must be registered again to keep going.
type FrameRequester interface {
	RequestFrame(fn func()) FrameID
	CancelFrame(id FrameID)
}

// PointerSource delivers pointer coordinates in viewport space.
type PointerSource interface {
	SubscribePointer(fn func(x, y float64)) (cancel func())
}

type Viewport interface {
	Viewport() field.Bounds
}

type Host interface {
	FrameRequester
	PointerSource
	Viewport
}

// Scheduler steps a Simulation once per host frame and renders the result.
// Start and Stop may be called repeatedly; Stop leaves no frame callback or
// pointer subscription behind, and a callback that fires after Stop does
// nothing.
type Scheduler struct {
	sim      *Simulation
	host     Host
	renderer Renderer

	running     bool
	generation  uint64
	pending     FrameID
	hasPending  bool
	unsubscribe func()
}

func NewScheduler(s *Simulation, host Host, r Renderer) *Scheduler {
	return &Scheduler{sim: s, host: host, renderer: r}
}

func (sc *Scheduler) Running() bool { return sc.running }

func (sc *Scheduler) Start() {
	if sc.running {
		return
	}
	sc.running = true
	sc.generation++
	sc.unsubscribe = sc.host.SubscribePointer(sc.sim.SetPointer)
	sc.schedule()
}

func (sc *Scheduler) Stop() {
	if !sc.running {
		return
	}
	sc.running = false
	sc.generation++
	if sc.hasPending {
		sc.host.CancelFrame(sc.pending)
		sc.hasPending = false
	}
	if sc.unsubscribe != nil {
		sc.unsubscribe()
		sc.unsubscribe = nil
	}
}

func (sc *Scheduler) schedule() {
	gen := sc.generation
	sc.pending = sc.host.RequestFrame(func() { sc.tick(gen) })
	sc.hasPending = true
}

func (sc *Scheduler) tick(gen uint64) {
	if !sc.running || gen != sc.generation {
		return
	}
	sc.hasPending = false
	f := sc.sim.Step(sc.host.Viewport())
	if sc.renderer != nil {
		sc.renderer.Render(f)
	}
	// The renderer may have stopped us.
	if sc.running && gen == sc.generation {
		sc.schedule()
	}
}
