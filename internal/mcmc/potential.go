package mcmc

// Potential is the target distribution's negative log-density together
// with its gradient. Built-in targets provide analytic gradients; a bare
// function can be adapted with FromFunc, which differentiates numerically.
type Potential interface {
	Energy(x Vars) float64
	Gradient(x Vars) Vars
}

// PotentialFunc is a bare potential without a gradient.
type PotentialFunc func(x Vars) float64

// numericStep is the central-difference step width, close to cbrt(eps)
// which balances truncation against round-off for float64.
const numericStep = 1e-6

type numericPotential struct {
	f PotentialFunc
}

// FromFunc wraps a bare potential function with a central-difference
// gradient. Analytic gradients should be preferred when available; each
// gradient evaluation costs 2*dim potential calls.
func FromFunc(f PotentialFunc) Potential {
	return &numericPotential{f: f}
}

func (p *numericPotential) Energy(x Vars) float64 {
	return p.f(x)
}

func (p *numericPotential) Gradient(x Vars) Vars {
	grad := make(Vars, len(x))
	probe := x.Clone()
	for name, vals := range x {
		gv := make([]float64, len(vals))
		for i := range vals {
			orig := vals[i]
			probe[name][i] = orig + numericStep
			hi := p.f(probe)
			probe[name][i] = orig - numericStep
			lo := p.f(probe)
			probe[name][i] = orig
			gv[i] = (hi - lo) / (2 * numericStep)
		}
		grad[name] = gv
	}
	return grad
}
