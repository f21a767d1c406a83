package sampler

import (
	"context"

	"github.com/san-kum/hmclab/internal/hmc"
	"github.com/san-kum/hmclab/internal/mcmc"
)

// Runner drives a single chain.
type Runner struct {
	kernel    Transition
	metrics   []Metric
	observers []Observer
}

func New(kernel Transition) *Runner {
	return &Runner{
		kernel:    kernel,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run applies the kernel cfg.NumSamples times starting from initial. The
// step-i transition uses key.Fold(i), so a run is fully reproducible from
// its root key and the same key stream can drive a coupled run.
func (r *Runner) Run(ctx context.Context, key mcmc.Key, initial mcmc.State, cfg Config) (*Result, error) {
	thin := cfg.Thin
	if thin < 1 {
		thin = 1
	}

	result := &Result{
		Samples: make([]mcmc.Vars, 0, cfg.NumSamples/thin+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	state := initial
	for i := 0; i < cfg.NumSamples; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		next, info, err := r.kernel.Step(key.Fold(uint64(i)), state)
		if err != nil {
			return result, err
		}
		state = next
		result.StepsTaken++

		if info.IsAccepted {
			result.Accepted++
		}
		if info.IsDivergent {
			result.Divergences++
		}

		for _, m := range r.metrics {
			m.Observe(state, info, i)
		}
		for _, obs := range r.observers {
			obs.OnStep(state, info, i)
		}

		if i%thin == 0 {
			result.Samples = append(result.Samples, state.Position.Clone())
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

var _ Transition = (*hmc.Kernel)(nil)
