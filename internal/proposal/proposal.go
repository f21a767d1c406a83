// Package proposal implements the energy bookkeeping and the
// Metropolis-Hastings acceptance step of the HMC kernel.
package proposal

import (
	"math"

	"github.com/san-kum/hmclab/internal/mcmc"
)

// Proposal is a phase-space state together with its total energy and the
// log-weight used by the acceptance sampler. Immutable once created.
type Proposal struct {
	State  mcmc.State
	Energy float64
	Weight float64
}

// Sampled is the outcome of comparing two proposals.
type Sampled struct {
	State                 mcmc.State
	AcceptanceProbability float64
	Accepted              bool
}

// New computes the total energy of a state: potential energy plus kinetic
// energy of its momentum.
func New(ke func(mcmc.Vars) float64, s mcmc.State) Proposal {
	return Proposal{
		State:  s,
		Energy: s.PotentialEnergy + ke(s.Momentum),
		Weight: 0,
	}
}

// Generate builds the proposal for a trajectory endpoint and flags
// divergence. The divergence criterion is the energy *difference* across
// the trajectory, not the absolute energy: the transition is divergent
// when the difference is non-finite or its magnitude exceeds threshold.
// A divergent proposal gets weight -Inf so the acceptance probability is
// forced to zero; divergence is reported, never raised.
func Generate(initialEnergy float64, end mcmc.State, ke func(mcmc.Vars) float64, threshold float64) (Proposal, bool) {
	endEnergy := end.PotentialEnergy + ke(end.Momentum)
	delta := endEnergy - initialEnergy
	if math.IsNaN(delta) {
		delta = math.Inf(1)
	}

	diverging := math.Abs(delta) > threshold
	weight := -delta
	if diverging {
		weight = math.Inf(-1)
	}

	return Proposal{State: end, Energy: endEnergy, Weight: weight}, diverging
}

// StaticBinomial is the Metropolis-Hastings acceptance step: accept the
// proposed state with probability min(1, exp(-deltaH)), where deltaH is
// the proposed energy minus the initial energy. u is a uniform draw in
// [0, 1) independent of the momentum draw. This correction makes HMC
// exact regardless of integrator error.
func StaticBinomial(u float64, initial, proposed Proposal) (Sampled, bool, float64) {
	pAccept := math.Exp(proposed.Weight)
	if pAccept > 1 {
		pAccept = 1
	}

	if u < pAccept {
		return Sampled{State: proposed.State, AcceptanceProbability: pAccept, Accepted: true}, true, pAccept
	}
	return Sampled{State: initial.State, AcceptanceProbability: pAccept, Accepted: false}, false, pAccept
}
