package automation

import (
	"context"
	"fmt"

	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/physics"
	"github.com/san-kum/driftfield/internal/sim"
)

// ParameterSweep replays a scenario across a range of one tuning value.
type ParameterSweep struct {
	Param    string
	Min, Max float64
	NumSteps int
}

type SweepResult struct {
	ParamValue float64
	Respawns   float64
	MeanSpeed  float64
	PeakEnergy float64
}

// SetTuning assigns one named tuning value.
func SetTuning(t *physics.Tuning, name string, value float64) error {
	switch name {
	case "gain":
		t.Gain = value
	case "damping":
		t.Damping = value
	case "dead_zone":
		t.DeadZone = value
	case "force_floor":
		t.ForceFloor = value
	default:
		return fmt.Errorf("%w: unknown tuning parameter %q", sim.ErrInvalidConfig, name)
	}
	return nil
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, scenario *Scenario, base sim.Config, sweep ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("%w: sweep needs at least 2 steps, got %d", sim.ErrInvalidConfig, sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		cfg := base
		if err := SetTuning(&cfg.Tuning, sweep.Param, paramVal); err != nil {
			return nil, err
		}

		res, err := Run(ctx, scenario, cfg, metrics.Default())
		if err != nil {
			return results, fmt.Errorf("sweep %s=%g: %w", sweep.Param, paramVal, err)
		}

		peak := 0.0
		for _, e := range res.Energy {
			peak = max(peak, e)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Respawns:   res.Metrics["respawns"],
			MeanSpeed:  res.Metrics["mean_speed"],
			PeakEnergy: peak,
		})
	}

	return results, nil
}
