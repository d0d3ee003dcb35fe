package physics

const (
	DefaultDeadZone   = 100.0 // no attraction inside this radius
	DefaultForceFloor = 100.0 // force = 1 / max(ForceFloor, d)
	DefaultGain       = 2.0
	DefaultDamping    = 0.98 // per frame
)

// Tuning holds the visually tuned constants of the stepper.
type Tuning struct {
	DeadZone   float64 `yaml:"dead_zone"`
	ForceFloor float64 `yaml:"force_floor"`
	Gain       float64 `yaml:"gain"`
	Damping    float64 `yaml:"damping"`
}

func DefaultTuning() Tuning {
	return Tuning{
		DeadZone:   DefaultDeadZone,
		ForceFloor: DefaultForceFloor,
		Gain:       DefaultGain,
		Damping:    DefaultDamping,
	}
}
