// Package target provides built-in target distributions as potential
// energy functions (negative log-densities) with analytic gradients.
package target

import (
	"fmt"
	"math"

	"github.com/san-kum/hmclab/internal/mcmc"
)

const logSqrt2Pi = 0.9189385332046727

// Normal is an elementwise Gaussian target with common mean and scale
// across every entry of every variable.
type Normal struct {
	Mean  float64
	Scale float64
}

func NewNormal(mean, scale float64) *Normal {
	return &Normal{Mean: mean, Scale: scale}
}

func (n *Normal) Energy(x mcmc.Vars) float64 {
	e := 0.0
	for _, vals := range x {
		for _, v := range vals {
			z := (v - n.Mean) / n.Scale
			e += 0.5*z*z + logSqrt2Pi + math.Log(n.Scale)
		}
	}
	return e
}

func (n *Normal) Gradient(x mcmc.Vars) mcmc.Vars {
	inv := 1 / (n.Scale * n.Scale)
	grad := make(mcmc.Vars, len(x))
	for name, vals := range x {
		gv := make([]float64, len(vals))
		for i, v := range vals {
			gv[i] = (v - n.Mean) * inv
		}
		grad[name] = gv
	}
	return grad
}

func (n *Normal) GetParams() map[string]float64 {
	return map[string]float64{"mean": n.Mean, "scale": n.Scale}
}

func (n *Normal) SetParam(name string, value float64) error {
	switch name {
	case "mean":
		n.Mean = value
	case "scale":
		n.Scale = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// StdNormal is the unit Gaussian, the usual smoke-test target.
func StdNormal() *Normal {
	return &Normal{Mean: 0, Scale: 1}
}
