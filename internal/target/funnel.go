package target

import (
	"fmt"
	"math"

	"github.com/san-kum/hmclab/internal/mcmc"
)

// Funnel is Neal's funnel: v ~ N(0, sigma^2), x_i | v ~ N(0, exp(v)).
// The varying curvature across the funnel neck exposes step-size
// sensitivity. Expects variables "v" (one entry) and "x" (Dim entries).
type Funnel struct {
	Sigma float64
	Dim   int
}

func NewFunnel(dim int) *Funnel {
	return &Funnel{Sigma: 3.0, Dim: dim}
}

func (f *Funnel) Energy(x mcmc.Vars) float64 {
	v := x["v"][0]
	xs := x["x"]

	e := 0.5*v*v/(f.Sigma*f.Sigma) + logSqrt2Pi + math.Log(f.Sigma)
	invVar := math.Exp(-v)
	for _, xi := range xs {
		e += 0.5*xi*xi*invVar + logSqrt2Pi + 0.5*v
	}
	return e
}

func (f *Funnel) Gradient(x mcmc.Vars) mcmc.Vars {
	v := x["v"][0]
	xs := x["x"]

	invVar := math.Exp(-v)
	dv := v / (f.Sigma * f.Sigma)
	gx := make([]float64, len(xs))
	for i, xi := range xs {
		gx[i] = xi * invVar
		dv += 0.5 - 0.5*xi*xi*invVar
	}
	return mcmc.Vars{"v": {dv}, "x": gx}
}

func (f *Funnel) GetParams() map[string]float64 {
	return map[string]float64{"sigma": f.Sigma, "dim": float64(f.Dim)}
}

func (f *Funnel) SetParam(name string, value float64) error {
	switch name {
	case "sigma":
		f.Sigma = value
	case "dim":
		f.Dim = int(value)
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
