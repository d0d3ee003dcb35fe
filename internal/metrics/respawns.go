package metrics

import "github.com/san-kum/driftfield/internal/sim"

type Respawns struct {
	name  string
	total int
}

func NewRespawns() *Respawns {
	return &Respawns{name: "respawns"}
}

func (r *Respawns) Name() string { return r.name }

func (r *Respawns) Observe(f sim.Frame) { r.total += f.Respawned }

func (r *Respawns) Value() float64 { return float64(r.total) }

func (r *Respawns) Reset() { r.total = 0 }
