package automation

import (
	"context"
	"sync"

	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/sim"
)

// Ensemble plays one scenario against several independently seeded
// simulations in parallel. Each run owns its own simulation, so ids and
// random streams never mix.
type Ensemble struct {
	scenario  *Scenario
	numRuns   int
	seedStart int64
}

func NewEnsemble(s *Scenario, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{scenario: s, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, cfg sim.Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			results[idx], errs[idx] = Run(ctx, e.scenario, cfgCopy, metrics.Default())
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
