package sampler

import (
	"context"
	"sync"

	"github.com/san-kum/hmclab/internal/mcmc"
)

// Ensemble runs several logically independent chains in parallel. Chain i
// derives its key stream from key.Fold(i), so results do not depend on
// goroutine scheduling. Metrics accumulate state, so each chain gets a
// fresh set from the factory rather than sharing instances.
type Ensemble struct {
	kernel    Transition
	numChains int
	metricsFn func() []Metric
}

func NewEnsemble(kernel Transition, numChains int, metricsFn func() []Metric) *Ensemble {
	return &Ensemble{kernel: kernel, numChains: numChains, metricsFn: metricsFn}
}

func (e *Ensemble) Run(ctx context.Context, key mcmc.Key, initial mcmc.State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numChains)
	errs := make([]error, e.numChains)

	var wg sync.WaitGroup
	for i := 0; i < e.numChains; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			runner := New(e.kernel)
			if e.metricsFn != nil {
				for _, m := range e.metricsFn() {
					runner.AddMetric(m)
				}
			}

			results[idx], errs[idx] = runner.Run(ctx, key.Fold(uint64(idx)), initial, cfg)
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
