package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hmclab/internal/experiment"
	"github.com/san-kum/hmclab/internal/mcmc"
)

const (
	DefaultStepSize   = 0.01
	DefaultNumSteps   = 100
	DefaultNumSamples = 5000
	DefaultThreshold  = 1000.0
)

type Config struct {
	Target              string               `yaml:"target"`
	TargetParams        map[string]float64   `yaml:"target_params"`
	StepSize            float64              `yaml:"step_size"`
	NumIntegrationSteps int                  `yaml:"num_integration_steps"`
	InverseMassMatrix   []float64            `yaml:"inverse_mass_matrix"`
	DivergenceThreshold float64              `yaml:"divergence_threshold"`
	Integrator          string               `yaml:"integrator"`
	NumSamples          int                  `yaml:"num_samples"`
	Seed                uint64               `yaml:"seed"`
	Thin                int                  `yaml:"thin"`
	InitialPosition     map[string][]float64 `yaml:"initial_position"`
	SecondPosition      map[string][]float64 `yaml:"second_position"`
	CouplingTolerance   float64              `yaml:"coupling_tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		Target:              "normal",
		Integrator:          "verlet",
		StepSize:            DefaultStepSize,
		NumIntegrationSteps: DefaultNumSteps,
		DivergenceThreshold: DefaultThreshold,
		NumSamples:          DefaultNumSamples,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToExperiment converts the file-level config into the experiment config.
func (c *Config) ToExperiment() experiment.Config {
	return experiment.Config{
		Target:              c.Target,
		TargetParams:        c.TargetParams,
		StepSize:            c.StepSize,
		NumIntegrationSteps: c.NumIntegrationSteps,
		InverseMassMatrix:   c.InverseMassMatrix,
		DivergenceThreshold: c.DivergenceThreshold,
		Integrator:          c.Integrator,
		NumSamples:          c.NumSamples,
		Seed:                c.Seed,
		Thin:                c.Thin,
		InitialPosition:     toVars(c.InitialPosition),
		SecondPosition:      toVars(c.SecondPosition),
		CouplingTolerance:   c.CouplingTolerance,
	}
}

func toVars(m map[string][]float64) mcmc.Vars {
	if m == nil {
		return nil
	}
	return mcmc.Vars(m).Clone()
}
