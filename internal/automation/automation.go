// Package automation runs scripted sequences of sampling experiments
// from a YAML scenario file.
package automation

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hmclab/internal/experiment"
	"github.com/san-kum/hmclab/internal/mcmc"
	"github.com/san-kum/hmclab/internal/sampler"
	"github.com/san-kum/hmclab/internal/storage"
)

// Scenario defines a scripted sampling sequence.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single sampling run in a scenario.
type ScenarioStep struct {
	Target              string               `yaml:"target"`
	TargetParams        map[string]float64   `yaml:"target_params"`
	Integrator          string               `yaml:"integrator"`
	StepSize            float64              `yaml:"step_size"`
	NumIntegrationSteps int                  `yaml:"num_integration_steps"`
	InverseMassMatrix   []float64            `yaml:"inverse_mass_matrix"`
	NumSamples          int                  `yaml:"num_samples"`
	Seed                uint64               `yaml:"seed"`
	InitialPosition     map[string][]float64 `yaml:"initial_position"`
	Save                bool                 `yaml:"save"`
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// RunScenario executes every step in order. Steps marked Save are
// persisted to the store.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store) ([]*sampler.Result, error) {
	results := make([]*sampler.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		fmt.Printf("running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Target)

		var init mcmc.Vars
		if step.InitialPosition != nil {
			init = mcmc.Vars(step.InitialPosition).Clone()
		}

		exp, err := experiment.New(experiment.Config{
			Target:              step.Target,
			TargetParams:        step.TargetParams,
			StepSize:            step.StepSize,
			NumIntegrationSteps: step.NumIntegrationSteps,
			InverseMassMatrix:   step.InverseMassMatrix,
			Integrator:          step.Integrator,
			NumSamples:          step.NumSamples,
			Seed:                step.Seed,
			InitialPosition:     init,
		})
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, result)

		if step.Save && st != nil {
			runID, err := st.Save(step.Target, step.StepSize, step.NumIntegrationSteps, step.Seed, step.Integrator, result)
			if err != nil {
				return results, fmt.Errorf("step %d: save: %w", i+1, err)
			}
			fmt.Printf("  saved as %s\n", runID)
		}
	}

	return results, nil
}
