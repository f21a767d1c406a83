// Package diagnostics provides run-level sampling metrics fed by the
// per-transition info records.
package diagnostics

import (
	"github.com/san-kum/hmclab/internal/hmc"
	"github.com/san-kum/hmclab/internal/mcmc"
)

// AcceptanceRate tracks the mean Metropolis acceptance probability. For a
// well-tuned HMC kernel this sits near 1; values far below suggest the
// step size is too large for the target's curvature.
type AcceptanceRate struct {
	sum     float64
	samples int
}

func NewAcceptanceRate() *AcceptanceRate {
	return &AcceptanceRate{}
}

func (a *AcceptanceRate) Name() string { return "acceptance_rate" }

func (a *AcceptanceRate) Observe(s mcmc.State, info hmc.Info, step int) {
	a.sum += info.AcceptanceProbability
	a.samples++
}

func (a *AcceptanceRate) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *AcceptanceRate) Reset() {
	a.sum = 0
	a.samples = 0
}

// DivergenceCount counts transitions flagged divergent.
type DivergenceCount struct {
	count int
}

func NewDivergenceCount() *DivergenceCount {
	return &DivergenceCount{}
}

func (d *DivergenceCount) Name() string { return "divergences" }

func (d *DivergenceCount) Observe(s mcmc.State, info hmc.Info, step int) {
	if info.IsDivergent {
		d.count++
	}
}

func (d *DivergenceCount) Value() float64 { return float64(d.count) }

func (d *DivergenceCount) Reset() { d.count = 0 }
