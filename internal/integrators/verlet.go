// Package integrators provides symplectic single-step integrators for
// Hamiltonian dynamics and the static trajectory builder that applies
// them a fixed number of times.
package integrators

import (
	"github.com/san-kum/hmclab/internal/mcmc"
	"github.com/san-kum/hmclab/internal/metric"
)

// Integrator advances phase space by one step of the given size. The
// returned state always carries the potential energy and gradient
// recomputed at the new position. Steps must be time-reversible: negating
// the momentum and re-applying the same number of steps returns to the
// starting point up to floating-point error.
type Integrator interface {
	Step(s mcmc.State, stepSize float64) mcmc.State
}

// VelocityVerlet is the leapfrog scheme in kick-drift-kick form: half-step
// momentum update, full-step position update, half-step momentum update
// with the gradient at the new position. This is the default integrator.
type VelocityVerlet struct {
	pot mcmc.Potential
	met metric.Metric
}

func NewVelocityVerlet(pot mcmc.Potential, met metric.Metric) *VelocityVerlet {
	return &VelocityVerlet{pot: pot, met: met}
}

func (v *VelocityVerlet) Step(s mcmc.State, stepSize float64) mcmc.State {
	half := 0.5 * stepSize

	p := s.Momentum.AddScaled(s.PotentialGradient, -half)
	x := s.Position.AddScaled(v.met.Velocity(p), stepSize)

	energy := v.pot.Energy(x)
	grad := v.pot.Gradient(x)
	p = p.AddScaled(grad, -half)

	return mcmc.State{
		Position:          x,
		Momentum:          p,
		PotentialEnergy:   energy,
		PotentialGradient: grad,
	}
}

// PositionVerlet is the drift-kick-drift variant: half-step position
// update, full-step momentum update, half-step position update. Also
// symplectic and time-reversible; occasionally preferable for targets
// whose gradient is much more expensive than the velocity map.
type PositionVerlet struct {
	pot mcmc.Potential
	met metric.Metric
}

func NewPositionVerlet(pot mcmc.Potential, met metric.Metric) *PositionVerlet {
	return &PositionVerlet{pot: pot, met: met}
}

func (pv *PositionVerlet) Step(s mcmc.State, stepSize float64) mcmc.State {
	half := 0.5 * stepSize

	x := s.Position.AddScaled(pv.met.Velocity(s.Momentum), half)
	grad := pv.pot.Gradient(x)
	p := s.Momentum.AddScaled(grad, -stepSize)
	x = x.AddScaled(pv.met.Velocity(p), half)

	energy := pv.pot.Energy(x)
	grad = pv.pot.Gradient(x)

	return mcmc.State{
		Position:          x,
		Momentum:          p,
		PotentialEnergy:   energy,
		PotentialGradient: grad,
	}
}
