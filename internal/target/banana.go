package target

import (
	"fmt"

	"github.com/san-kum/hmclab/internal/mcmc"
)

// Banana is the two-dimensional Rosenbrock density, a standard stress
// test for samplers: a narrow curved ridge that defeats isotropic step
// proposals. Expects a variable "x" with two entries.
type Banana struct {
	A float64
	B float64
}

func NewBanana() *Banana {
	return &Banana{A: 1.0, B: 5.0}
}

func (b *Banana) Energy(x mcmc.Vars) float64 {
	v := x["x"]
	d0 := v[0] - b.A
	d1 := v[1] - v[0]*v[0]
	return d0*d0 + b.B*d1*d1
}

func (b *Banana) Gradient(x mcmc.Vars) mcmc.Vars {
	v := x["x"]
	d0 := v[0] - b.A
	d1 := v[1] - v[0]*v[0]
	return mcmc.Vars{"x": {
		2*d0 - 4*b.B*d1*v[0],
		2 * b.B * d1,
	}}
}

func (b *Banana) GetParams() map[string]float64 {
	return map[string]float64{"a": b.A, "b": b.B}
}

func (b *Banana) SetParam(name string, value float64) error {
	switch name {
	case "a":
		b.A = value
	case "b":
		b.B = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
