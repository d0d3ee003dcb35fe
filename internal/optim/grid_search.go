package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/driftfield/internal/automation"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/sim"
)

// Objective scores a finished run; lower is better.
type Objective func(r *automation.Result) float64

// TargetMetric scores a run by its distance from a target metric value.
func TargetMetric(name string, target float64) Objective {
	return func(r *automation.Result) float64 {
		return math.Abs(r.Metrics[name] - target)
	}
}

// GridSearch tries every combination of tuning values and keeps the one
// with the lowest objective.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

func (g *GridSearch) Search(
	ctx context.Context,
	scenario *automation.Scenario,
	base sim.Config,
	objective Objective,
) (map[string]float64, float64, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, 0, fmt.Errorf("%w: %d params but %d ranges", sim.ErrInvalidConfig, len(g.paramNames), len(g.ranges))
	}

	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), scenario, base, objective, &best, &bestParams)
	if err != nil {
		return nil, 0, err
	}
	return bestParams, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	scenario *automation.Scenario,
	base sim.Config,
	objective Objective,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		cfg := base
		for k, v := range current {
			if err := automation.SetTuning(&cfg.Tuning, k, v); err != nil {
				return err
			}
		}

		result, err := automation.Run(ctx, scenario, cfg, metrics.Default())
		if err != nil {
			// invalid combinations are skipped, cancellation is not
			if ctx.Err() != nil {
				return err
			}
			return nil
		}

		val := objective(result)
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, scenario, base, objective, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
