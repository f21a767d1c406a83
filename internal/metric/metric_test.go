package metric

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/hmclab/internal/mcmc"
)

func TestDiagonalKineticEnergy(t *testing.T) {
	m := NewDiagonal([]float64{0.5, 2.0})
	p := mcmc.Vars{"x": {2.0, 3.0}}

	// (1/2)(0.5*4 + 2*9) = 10
	ke := m.KineticEnergy(p)
	if math.Abs(ke-10.0) > 1e-12 {
		t.Errorf("kinetic energy = %f, expected 10", ke)
	}
}

func TestDiagonalVelocity(t *testing.T) {
	m := NewDiagonal([]float64{0.5, 2.0})
	p := mcmc.Vars{"x": {2.0, 3.0}}

	v := m.Velocity(p)
	if v["x"][0] != 1.0 || v["x"][1] != 6.0 {
		t.Errorf("velocity = %v, expected [1 6]", v["x"])
	}
}

func TestDiagonalSampleDeterministic(t *testing.T) {
	m := NewDiagonal([]float64{0.1})
	shape := mcmc.Vars{"x": {0.0}}
	key := mcmc.NewKey(5)

	a := m.SampleMomentum(key, shape)
	b := m.SampleMomentum(key, shape)
	if !a.Equal(b) {
		t.Error("same key should give the same momentum")
	}
}

func TestDenseMatchesDiagonal(t *testing.T) {
	inv := []float64{0.5, 2.0}
	diag := NewDiagonal(inv)
	dense, err := NewDense([][]float64{{0.5, 0}, {0, 2.0}})
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}

	p := mcmc.Vars{"x": {1.3, -0.7}}
	if math.Abs(diag.KineticEnergy(p)-dense.KineticEnergy(p)) > 1e-12 {
		t.Error("kinetic energies should agree for diagonal matrix")
	}
	if !diag.Velocity(p).WithinTol(dense.Velocity(p), 1e-12) {
		t.Error("velocities should agree for diagonal matrix")
	}

	key := mcmc.NewKey(11)
	pd := diag.SampleMomentum(key, p)
	pm := dense.SampleMomentum(key, p)
	if !pd.WithinTol(pm, 1e-12) {
		t.Error("momentum draws should agree for diagonal matrix")
	}
}

func TestDenseSampleCovariance(t *testing.T) {
	// M^-1 with correlation; check the quadratic form of the draw has the
	// right scale: E[p^T M^-1 p] = dim.
	dense, err := NewDense([][]float64{{1.0, 0.5}, {0.5, 1.0}})
	if err != nil {
		t.Fatalf("NewDense: %v", err)
	}

	shape := mcmc.Vars{"x": {0.0, 0.0}}
	root := mcmc.NewKey(99)

	sum := 0.0
	n := 20000
	for i := 0; i < n; i++ {
		p := dense.SampleMomentum(root.Fold(uint64(i)), shape)
		sum += 2 * dense.KineticEnergy(p)
	}
	mean := sum / float64(n)
	if math.Abs(mean-2.0) > 0.1 {
		t.Errorf("E[p^T M^-1 p] = %f, expected 2", mean)
	}
}

func TestDenseNotPositiveDefinite(t *testing.T) {
	_, err := NewDense([][]float64{{1.0, 2.0}, {2.0, 1.0}})
	if !errors.Is(err, mcmc.ErrNotPositiveDefinite) {
		t.Errorf("expected ErrNotPositiveDefinite, got %v", err)
	}
}
