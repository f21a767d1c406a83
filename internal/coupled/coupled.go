// Package coupled implements common-random-number coupling of two HMC
// chains: both chains receive the same momentum draw and the same
// acceptance draw each transition, so their states contract toward each
// other and eventually coalesce exactly. The number of transitions until
// coalescence is a convergence diagnostic; computing it is the caller's
// concern.
package coupled

import (
	"github.com/san-kum/hmclab/internal/hmc"
	"github.com/san-kum/hmclab/internal/mcmc"
)

// State carries the two chains and whether they have met. IsCoupled is
// absorbing: once the chains coincide they receive identical inputs and
// evolve identically forever.
type State struct {
	State1    mcmc.State
	State2    mcmc.State
	IsCoupled bool
}

// Info pairs the two chains' transition records. Before coalescence the
// two records may differ (different positions mean different energies)
// even though the random draws are shared.
type Info struct {
	Info1     hmc.Info
	Info2     hmc.Info
	IsCoupled bool
}

// Kernel advances a coupled pair of chains.
type Kernel struct {
	inner *hmc.Kernel
	tol   float64
}

// Option configures a coupled kernel.
type Option func(*Kernel)

// WithTolerance makes coalescence detection accept near-equality within
// tol instead of bitwise equality. On detection the second chain is
// snapped onto the first, so the coupling stays absorbing. The default
// (tol = 0) is exact bitwise equality.
func WithTolerance(tol float64) Option {
	return func(k *Kernel) { k.tol = tol }
}

// New builds a coupled kernel with the same configuration surface as the
// single-chain kernel.
func New(pot mcmc.Potential, cfg hmc.Config, opts ...Option) (*Kernel, error) {
	inner, err := hmc.New(pot, cfg)
	if err != nil {
		return nil, err
	}
	k := &Kernel{inner: inner}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// NewState evaluates the potential at both starting positions.
func NewState(pos1, pos2 mcmc.Vars, pot mcmc.Potential) State {
	return State{
		State1: mcmc.NewState(pos1, pot),
		State2: mcmc.NewState(pos2, pot),
	}
}

// Step advances both chains by one transition. The key is consumed
// exactly as by the single-chain kernel, so chain 1 of a coupled run
// reproduces a plain HMC run driven by the same key stream bit for bit.
func (k *Kernel) Step(key mcmc.Key, cs State) (State, Info, error) {
	if cs.IsCoupled {
		s, info, err := k.inner.Step(key, cs.State1)
		if err != nil {
			return cs, Info{}, err
		}
		return State{State1: s, State2: s, IsCoupled: true},
			Info{Info1: info, Info2: info, IsCoupled: true}, nil
	}

	if cs.State1.Position.Dim() != k.inner.Metric().Dim() {
		return cs, Info{}, mcmc.ErrDimensionMismatch
	}

	momentum := k.inner.Metric().SampleMomentum(key.Fold(0), cs.State1.Position)
	u := key.Fold(1).Uniform()

	s1, info1 := k.inner.Transition(cs.State1, momentum, u)
	s2, info2 := k.inner.Transition(cs.State2, momentum, u)

	coupledNow := s1.Position.Equal(s2.Position)
	if !coupledNow && k.tol > 0 {
		coupledNow = s1.Position.WithinTol(s2.Position, k.tol)
	}
	if coupledNow {
		s2 = s1
	}

	return State{State1: s1, State2: s2, IsCoupled: coupledNow},
		Info{Info1: info1, Info2: info2, IsCoupled: coupledNow}, nil
}
