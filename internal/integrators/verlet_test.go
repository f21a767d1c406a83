package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/hmclab/internal/mcmc"
	"github.com/san-kum/hmclab/internal/metric"
)

// Standard Gaussian potential, U(x) = (1/2) sum x_i^2.
type gaussianPotential struct{}

func (gaussianPotential) Energy(x mcmc.Vars) float64 {
	e := 0.0
	for _, vals := range x {
		for _, v := range vals {
			e += 0.5 * v * v
		}
	}
	return e
}

func (gaussianPotential) Gradient(x mcmc.Vars) mcmc.Vars { return x.Clone() }

func gaussian() mcmc.Potential { return gaussianPotential{} }

func hamiltonian(met metric.Metric, s mcmc.State) float64 {
	return s.PotentialEnergy + met.KineticEnergy(s.Momentum)
}

func TestVelocityVerletReversible(t *testing.T) {
	pot := gaussian()
	met := metric.NewDiagonal([]float64{1.0, 1.0})
	integ := NewVelocityVerlet(pot, met)

	initial := mcmc.NewState(mcmc.Vars{"x": {1.0, -0.5}}, pot).
		WithMomentum(mcmc.Vars{"x": {0.3, 0.8}})

	const n = 50
	s := initial
	for i := 0; i < n; i++ {
		s = integ.Step(s, 0.1)
	}
	s = s.FlipMomentum()
	for i := 0; i < n; i++ {
		s = integ.Step(s, 0.1)
	}
	s = s.FlipMomentum()

	if !s.Position.WithinTol(initial.Position, 1e-8) {
		t.Errorf("position not recovered: %v vs %v", s.Position, initial.Position)
	}
	if !s.Momentum.WithinTol(initial.Momentum, 1e-8) {
		t.Errorf("momentum not recovered: %v vs %v", s.Momentum, initial.Momentum)
	}
}

func TestPositionVerletReversible(t *testing.T) {
	pot := gaussian()
	met := metric.NewDiagonal([]float64{1.0})
	integ := NewPositionVerlet(pot, met)

	initial := mcmc.NewState(mcmc.Vars{"x": {0.7}}, pot).
		WithMomentum(mcmc.Vars{"x": {-1.2}})

	const n = 40
	s := initial
	for i := 0; i < n; i++ {
		s = integ.Step(s, 0.05)
	}
	s = s.FlipMomentum()
	for i := 0; i < n; i++ {
		s = integ.Step(s, 0.05)
	}
	s = s.FlipMomentum()

	if !s.Position.WithinTol(initial.Position, 1e-8) || !s.Momentum.WithinTol(initial.Momentum, 1e-8) {
		t.Error("position-Verlet round trip did not recover the start")
	}
}

func TestVelocityVerletEnergyConservation(t *testing.T) {
	pot := gaussian()
	met := metric.NewDiagonal([]float64{1.0})
	integ := NewVelocityVerlet(pot, met)

	s := mcmc.NewState(mcmc.Vars{"x": {1.5}}, pot).
		WithMomentum(mcmc.Vars{"x": {0.5}})
	h0 := hamiltonian(met, s)

	// Symplectic integrators keep the energy error bounded over long
	// trajectories rather than drifting.
	for i := 0; i < 1000; i++ {
		s = integ.Step(s, 0.01)
		if math.Abs(hamiltonian(met, s)-h0) > 1e-4 {
			t.Fatalf("energy drifted at step %d: %f vs %f", i, hamiltonian(met, s), h0)
		}
	}
}

func TestVelocityVerletGradientConsistent(t *testing.T) {
	pot := gaussian()
	met := metric.NewDiagonal([]float64{1.0})
	integ := NewVelocityVerlet(pot, met)

	s := mcmc.NewState(mcmc.Vars{"x": {1.0}}, pot).
		WithMomentum(mcmc.Vars{"x": {0.2}})
	s = integ.Step(s, 0.1)

	// Energy and gradient in the returned state belong to the new position.
	if math.Abs(s.PotentialEnergy-pot.Energy(s.Position)) > 1e-12 {
		t.Error("stale potential energy in stepped state")
	}
	if !s.PotentialGradient.WithinTol(pot.Gradient(s.Position), 1e-12) {
		t.Error("stale gradient in stepped state")
	}
}

func TestStaticTrajectoryStepCount(t *testing.T) {
	pot := gaussian()
	met := metric.NewDiagonal([]float64{1.0})

	count := 0
	counting := stepFunc(func(s mcmc.State, stepSize float64) mcmc.State {
		count++
		return NewVelocityVerlet(pot, met).Step(s, stepSize)
	})

	traj := NewStaticTrajectory(counting, 0.1, 7)
	traj.Build(mcmc.NewState(mcmc.Vars{"x": {1.0}}, pot))

	if count != 7 {
		t.Errorf("expected 7 integrator calls, got %d", count)
	}
	if traj.NumSteps() != 7 {
		t.Errorf("NumSteps() = %d", traj.NumSteps())
	}
}

type stepFunc func(mcmc.State, float64) mcmc.State

func (f stepFunc) Step(s mcmc.State, stepSize float64) mcmc.State { return f(s, stepSize) }
