// Package metric implements the Gaussian Euclidean kinetic energy used by
// the HMC kernel: momentum sampling, the quadratic kinetic energy form and
// the velocity map, all parameterized by an inverse mass matrix.
package metric

import (
	"math"

	"github.com/san-kum/hmclab/internal/mcmc"
)

// Metric couples a momentum distribution to a kinetic energy. The inverse
// mass matrix acts as a preconditioner: momentum is drawn from N(0, M)
// where M is the inverse of the supplied matrix, the kinetic energy is
// (1/2) p^T M^-1 p and the velocity map is M^-1 p.
type Metric interface {
	// SampleMomentum draws a momentum with the same structure as shape.
	SampleMomentum(key mcmc.Key, shape mcmc.Vars) mcmc.Vars
	KineticEnergy(p mcmc.Vars) float64
	Velocity(p mcmc.Vars) mcmc.Vars
	Dim() int
}

// Diagonal is the diagonal-inverse-mass-matrix metric.
type Diagonal struct {
	invMass []float64
	sqrtM   []float64 // 1/sqrt(invMass), scales standard normal draws
}

func NewDiagonal(invMass []float64) *Diagonal {
	sqrtM := make([]float64, len(invMass))
	for i, v := range invMass {
		sqrtM[i] = 1 / math.Sqrt(v)
	}
	return &Diagonal{invMass: invMass, sqrtM: sqrtM}
}

func (d *Diagonal) Dim() int { return len(d.invMass) }

func (d *Diagonal) SampleMomentum(key mcmc.Key, shape mcmc.Vars) mcmc.Vars {
	draws := key.Normals(len(d.invMass))
	for i := range draws {
		draws[i] *= d.sqrtM[i]
	}
	return shape.Unflatten(draws)
}

func (d *Diagonal) KineticEnergy(p mcmc.Vars) float64 {
	flat := p.Flatten()
	ke := 0.0
	for i, v := range flat {
		ke += 0.5 * d.invMass[i] * v * v
	}
	return ke
}

func (d *Diagonal) Velocity(p mcmc.Vars) mcmc.Vars {
	flat := p.Flatten()
	for i := range flat {
		flat[i] *= d.invMass[i]
	}
	return p.Unflatten(flat)
}

// Dense is the dense-inverse-mass-matrix metric. Momentum is sampled by
// back-substitution against the Cholesky factor of the inverse mass
// matrix: if L L^T = M^-1 then p = L^-T eps has covariance M.
type Dense struct {
	invMass [][]float64
	chol    [][]float64 // lower triangular
}

func NewDense(invMass [][]float64) (*Dense, error) {
	chol, err := cholesky(invMass)
	if err != nil {
		return nil, err
	}
	return &Dense{invMass: invMass, chol: chol}, nil
}

func (d *Dense) Dim() int { return len(d.invMass) }

func (d *Dense) SampleMomentum(key mcmc.Key, shape mcmc.Vars) mcmc.Vars {
	n := len(d.invMass)
	eps := key.Normals(n)

	// Solve L^T p = eps by back substitution.
	p := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := eps[i]
		for j := i + 1; j < n; j++ {
			sum -= d.chol[j][i] * p[j]
		}
		p[i] = sum / d.chol[i][i]
	}
	return shape.Unflatten(p)
}

func (d *Dense) KineticEnergy(p mcmc.Vars) float64 {
	flat := p.Flatten()
	n := len(flat)

	// (1/2) ||L^T p||^2 = (1/2) p^T M^-1 p
	ke := 0.0
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := i; j < n; j++ {
			sum += d.chol[j][i] * flat[j]
		}
		ke += 0.5 * sum * sum
	}
	return ke
}

func (d *Dense) Velocity(p mcmc.Vars) mcmc.Vars {
	flat := p.Flatten()
	n := len(flat)
	v := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += d.invMass[i][j] * flat[j]
		}
		v[i] = sum
	}
	return p.Unflatten(v)
}

func cholesky(a [][]float64) ([][]float64, error) {
	n := len(a)
	l := make([][]float64, n)
	for i := range l {
		l[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		if len(a[i]) != n {
			return nil, mcmc.ErrDimensionMismatch
		}
		for j := 0; j <= i; j++ {
			sum := a[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 0 {
					return nil, mcmc.ErrNotPositiveDefinite
				}
				l[i][j] = math.Sqrt(sum)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
	}
	return l, nil
}
