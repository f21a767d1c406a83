// Package hmc implements the Hamiltonian Monte Carlo transition kernel:
// sample momentum, integrate a fixed-length trajectory, flip momentum,
// accept or reject with a Metropolis-Hastings step.
package hmc

import (
	"github.com/san-kum/hmclab/internal/integrators"
	"github.com/san-kum/hmclab/internal/mcmc"
	"github.com/san-kum/hmclab/internal/metric"
	"github.com/san-kum/hmclab/internal/proposal"
)

// DefaultDivergenceThreshold is the energy-difference magnitude above
// which a transition is flagged divergent.
const DefaultDivergenceThreshold = 1000.0

// Config holds the static parameters of a kernel.
type Config struct {
	StepSize float64

	// InverseMassMatrix is the diagonal of the preconditioner. Ignored
	// when Metric is set.
	InverseMassMatrix []float64

	// Metric overrides InverseMassMatrix with an arbitrary kinetic
	// energy, e.g. a dense metric.Dense.
	Metric metric.Metric

	NumIntegrationSteps int

	// Integrator builds the single-step update; defaults to velocity
	// Verlet when nil.
	Integrator func(mcmc.Potential, metric.Metric) integrators.Integrator

	// DivergenceThreshold defaults to DefaultDivergenceThreshold when 0.
	DivergenceThreshold float64
}

// Info is the diagnostic record emitted by each transition.
type Info struct {
	Momentum              mcmc.Vars
	AcceptanceProbability float64
	IsAccepted            bool
	IsDivergent           bool
	Energy                float64
	Proposal              mcmc.State
	NumIntegrationSteps   int
}

// Kernel is a single-chain HMC transition kernel. A kernel is immutable
// after construction; Step is a pure function of (key, state).
type Kernel struct {
	pot        mcmc.Potential
	met        metric.Metric
	trajectory *integrators.StaticTrajectory
	threshold  float64
}

// New validates the configuration and builds a kernel. Dimension mismatch
// between the mass matrix and the sampled position surfaces on the first
// Step, since the position structure is not known until then.
func New(pot mcmc.Potential, cfg Config) (*Kernel, error) {
	if cfg.StepSize <= 0 {
		return nil, mcmc.ErrStepSize
	}
	if cfg.NumIntegrationSteps < 1 {
		return nil, mcmc.ErrNumSteps
	}

	met := cfg.Metric
	if met == nil {
		met = metric.NewDiagonal(cfg.InverseMassMatrix)
	}

	build := cfg.Integrator
	if build == nil {
		build = func(p mcmc.Potential, m metric.Metric) integrators.Integrator {
			return integrators.NewVelocityVerlet(p, m)
		}
	}

	threshold := cfg.DivergenceThreshold
	if threshold == 0 {
		threshold = DefaultDivergenceThreshold
	}

	return &Kernel{
		pot:        pot,
		met:        met,
		trajectory: integrators.NewStaticTrajectory(build(pot, met), cfg.StepSize, cfg.NumIntegrationSteps),
		threshold:  threshold,
	}, nil
}

// NewState evaluates the potential at pos and returns the initial chain
// state.
func NewState(pos mcmc.Vars, pot mcmc.Potential) mcmc.State {
	return mcmc.NewState(pos, pot)
}

// Step advances the chain by one transition. The momentum draw and the
// acceptance draw come from separate folds of key, so they are
// independent; calling Step twice with the same key and state reproduces
// the same output bit for bit.
func (k *Kernel) Step(key mcmc.Key, state mcmc.State) (mcmc.State, Info, error) {
	if state.Position.Dim() != k.met.Dim() {
		return state, Info{}, mcmc.ErrDimensionMismatch
	}

	momentum := k.met.SampleMomentum(key.Fold(0), state.Position)
	u := key.Fold(1).Uniform()
	next, info := k.Transition(state, momentum, u)
	return next, info, nil
}

// Transition is the deterministic core of Step: it consumes an explicit
// momentum and uniform draw instead of a key. The coupled kernel feeds
// the same draws to two chains to correlate their transitions.
func (k *Kernel) Transition(state mcmc.State, momentum mcmc.Vars, u float64) (mcmc.State, Info) {
	initial := state.WithMomentum(momentum)

	end := k.trajectory.Build(initial)
	end = end.FlipMomentum()

	initialProposal := proposal.New(k.met.KineticEnergy, initial)
	newProposal, diverging := proposal.Generate(initialProposal.Energy, end, k.met.KineticEnergy, k.threshold)
	sampled, accepted, pAccept := proposal.StaticBinomial(u, initialProposal, newProposal)

	info := Info{
		Momentum:              momentum,
		AcceptanceProbability: pAccept,
		IsAccepted:            accepted,
		IsDivergent:           diverging,
		Energy:                newProposal.Energy,
		Proposal:              newProposal.State,
		NumIntegrationSteps:   k.trajectory.NumSteps(),
	}

	return sampled.State, info
}

// Metric exposes the kernel's kinetic energy, used by the coupled kernel
// to share a single momentum draw across two chains.
func (k *Kernel) Metric() metric.Metric { return k.met }
