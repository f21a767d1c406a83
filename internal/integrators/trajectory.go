package integrators

import "github.com/san-kum/hmclab/internal/mcmc"

// StaticTrajectory turns an initial phase-space state into a trajectory
// endpoint by applying the integrator exactly NumSteps times. There is no
// early termination and no step-size adaptation; that is what makes the
// resulting proposal distribution static and the kernel deterministic.
type StaticTrajectory struct {
	step     Integrator
	stepSize float64
	numSteps int
}

func NewStaticTrajectory(step Integrator, stepSize float64, numSteps int) *StaticTrajectory {
	return &StaticTrajectory{step: step, stepSize: stepSize, numSteps: numSteps}
}

func (t *StaticTrajectory) Build(initial mcmc.State) mcmc.State {
	s := initial
	for i := 0; i < t.numSteps; i++ {
		s = t.step.Step(s, t.stepSize)
	}
	return s
}

func (t *StaticTrajectory) NumSteps() int { return t.numSteps }
