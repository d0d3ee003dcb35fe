package metrics

import (
	"github.com/san-kum/driftfield/internal/sim"
)

// KineticEnergy reports the field's total ½|v|² on the last observed
// frame. Particles are treated as unit mass.
type KineticEnergy struct {
	name    string
	current float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f sim.Frame) {
	e.current = FieldEnergy(f)
}

func (e *KineticEnergy) Value() float64 { return e.current }

func (e *KineticEnergy) Reset() { e.current = 0 }

// FieldEnergy sums ½|v|² over every particle in f.
func FieldEnergy(f sim.Frame) float64 {
	total := 0.0
	for _, p := range f.Particles {
		total += 0.5 * (p.VX*p.VX + p.VY*p.VY)
	}
	return total
}

// MeanSpeed averages particle speed over every observed frame.
type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(f sim.Frame) {
	for _, p := range f.Particles {
		m.sum += p.Speed()
		m.samples++
	}
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}
