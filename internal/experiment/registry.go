package experiment

import (
	"fmt"

	"github.com/san-kum/hmclab/internal/diagnostics"
	"github.com/san-kum/hmclab/internal/integrators"
	"github.com/san-kum/hmclab/internal/mcmc"
	"github.com/san-kum/hmclab/internal/metric"
	"github.com/san-kum/hmclab/internal/sampler"
)

type integratorBuilder func(mcmc.Potential, metric.Metric) integrators.Integrator

var integratorRegistry = map[string]integratorBuilder{
	"verlet": func(p mcmc.Potential, m metric.Metric) integrators.Integrator {
		return integrators.NewVelocityVerlet(p, m)
	},
	"position-verlet": func(p mcmc.Potential, m metric.Metric) integrators.Integrator {
		return integrators.NewPositionVerlet(p, m)
	},
}

// GetIntegrator resolves an integrator name; the empty string selects the
// default velocity Verlet.
func GetIntegrator(name string) (integratorBuilder, error) {
	if name == "" {
		name = "verlet"
	}
	fn, ok := integratorRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn, nil
}

func ListIntegrators() []string {
	return []string{"verlet", "position-verlet"}
}

// DefaultMetrics builds the standard diagnostic set for a run. The
// moments metric tracks the first coordinate of the first variable.
func DefaultMetrics(init mcmc.Vars) []sampler.Metric {
	ms := []sampler.Metric{
		diagnostics.NewAcceptanceRate(),
		diagnostics.NewDivergenceCount(),
		diagnostics.NewSquaredJump(),
	}
	names := init.Names()
	if len(names) > 0 && len(init[names[0]]) > 0 {
		ms = append(ms, diagnostics.NewMoments(names[0], 0))
	}
	return ms
}
