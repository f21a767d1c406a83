package target

import (
	"fmt"
	"sort"

	"github.com/san-kum/hmclab/internal/mcmc"
)

// Configurable exposes named scalar parameters, for CLI overrides and
// parameter sweeps.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

type builder func(params map[string]float64) (mcmc.Potential, mcmc.Vars)

var registry = map[string]builder{
	"normal": func(params map[string]float64) (mcmc.Potential, mcmc.Vars) {
		t := NewNormal(1.0, 2.0)
		applyParams(t, params)
		return t, mcmc.Vars{"x": {t.Mean}}
	},
	"std_normal": func(params map[string]float64) (mcmc.Potential, mcmc.Vars) {
		return StdNormal(), mcmc.Vars{"x": {0}}
	},
	"banana": func(params map[string]float64) (mcmc.Potential, mcmc.Vars) {
		t := NewBanana()
		applyParams(t, params)
		return t, mcmc.Vars{"x": {0, 0}}
	},
	"funnel": func(params map[string]float64) (mcmc.Potential, mcmc.Vars) {
		dim := 5
		if d, ok := params["dim"]; ok {
			dim = int(d)
		}
		t := NewFunnel(dim)
		applyParams(t, params)
		return t, mcmc.Vars{"v": {0}, "x": make([]float64, dim)}
	},
}

func applyParams(c Configurable, params map[string]float64) {
	for name, value := range params {
		// Unknown params are ignored; shared sweeps pass supersets.
		_ = c.SetParam(name, value)
	}
}

// Get returns a target and its default initial position.
func Get(name string, params map[string]float64) (mcmc.Potential, mcmc.Vars, error) {
	b, ok := registry[name]
	if !ok {
		return nil, nil, fmt.Errorf("unknown target: %s (available: %v)", name, List())
	}
	pot, init := b(params)
	return pot, init, nil
}

// List returns the registered target names, sorted.
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
