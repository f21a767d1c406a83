// Package sampler provides the inference loop that repeatedly applies a
// transition kernel, collects samples and feeds per-transition
// diagnostics to metrics and observers. The kernel itself stays a pure
// single-transition function; everything loop-shaped lives here.
package sampler

import (
	"github.com/san-kum/hmclab/internal/hmc"
	"github.com/san-kum/hmclab/internal/mcmc"
)

// Transition is a single-chain transition kernel.
type Transition interface {
	Step(key mcmc.Key, state mcmc.State) (mcmc.State, hmc.Info, error)
}

// Metric accumulates a scalar diagnostic over a run.
type Metric interface {
	Name() string
	Observe(s mcmc.State, info hmc.Info, step int)
	Value() float64
	Reset()
}

// Observer is notified after every transition.
type Observer interface {
	OnStep(s mcmc.State, info hmc.Info, step int)
}

// Config controls a sampling run.
type Config struct {
	NumSamples int
	Seed       uint64

	// Thin keeps every Thin-th sample; 0 or 1 keeps all.
	Thin int
}

// Result holds the collected chain and run-level diagnostics.
type Result struct {
	Samples     []mcmc.Vars
	Metrics     map[string]float64
	Accepted    int
	Divergences int
	StepsTaken  int
}

// Series extracts one scalar coordinate of one variable across the chain.
func (r *Result) Series(name string, idx int) []float64 {
	series := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		series[i] = s[name][idx]
	}
	return series
}
