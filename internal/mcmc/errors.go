package mcmc

import "errors"

// Configuration errors for kernel construction.
var (
	// ErrStepSize indicates a non-positive integration step size.
	ErrStepSize = errors.New("mcmc: step size must be positive")

	// ErrNumSteps indicates fewer than one integration step per trajectory.
	ErrNumSteps = errors.New("mcmc: num integration steps must be >= 1")

	// ErrDimensionMismatch indicates the mass matrix does not match the
	// flattened position dimension.
	ErrDimensionMismatch = errors.New("mcmc: dimension mismatch between position and mass matrix")

	// ErrNotPositiveDefinite indicates a dense inverse mass matrix whose
	// Cholesky factorization failed.
	ErrNotPositiveDefinite = errors.New("mcmc: inverse mass matrix is not positive-definite")
)
