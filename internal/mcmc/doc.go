// Package mcmc provides core primitives for Hamiltonian Monte Carlo
// transition kernels.
//
// The package defines the fundamental types shared by the sampling
// machinery:
//
//   - [Vars]: named collection of numeric arrays (positions, momenta)
//   - [State]: phase-space point with cached potential energy and gradient
//   - [Potential]: target distribution interface (negative log-density)
//   - [Key]: splittable random key for pure, replayable randomness
//
// # Example
//
//	pot := target.NewNormal(1.0, 2.0)
//	state := mcmc.NewState(mcmc.Vars{"x": {1.0}}, pot)
//	k, _ := hmc.New(pot, hmc.Config{
//		StepSize:            0.01,
//		InverseMassMatrix:   []float64{0.1},
//		NumIntegrationSteps: 100,
//	})
//	next, info, _ := k.Step(mcmc.NewKey(19), state)
//
// # Thread Safety
//
// All types in this package are immutable value types once constructed.
// Kernel transitions are pure functions of (key, state) and may be called
// concurrently on distinct states.
package mcmc
