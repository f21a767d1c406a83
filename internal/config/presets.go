package config

var Presets = map[string]map[string]*Config{
	"normal": {
		"reference": {
			Target: "normal", Integrator: "verlet",
			StepSize: 0.01, NumIntegrationSteps: 100,
			InverseMassMatrix: []float64{0.1},
			NumSamples:        50000, Seed: 19,
			InitialPosition: map[string][]float64{"x": {1.0}},
		},
		"fast": {
			Target: "normal", Integrator: "verlet",
			StepSize: 0.5, NumIntegrationSteps: 20,
			InverseMassMatrix: []float64{0.25},
			NumSamples:        10000,
			InitialPosition:   map[string][]float64{"x": {1.0}},
		},
		"coupled": {
			Target: "normal", Integrator: "verlet",
			StepSize: 0.01, NumIntegrationSteps: 100,
			InverseMassMatrix: []float64{0.1},
			NumSamples:        50000, Seed: 19,
			InitialPosition: map[string][]float64{"x": {1.0}},
			SecondPosition:  map[string][]float64{"x": {-1.0}},
		},
	},
	"std_normal": {
		"default": {
			Target: "std_normal", Integrator: "verlet",
			StepSize: 0.1, NumIntegrationSteps: 30,
			InverseMassMatrix: []float64{1.0},
			NumSamples:        10000,
		},
	},
	"banana": {
		"default": {
			Target: "banana", Integrator: "verlet",
			StepSize: 0.02, NumIntegrationSteps: 50,
			InverseMassMatrix: []float64{1.0, 1.0},
			NumSamples:        20000,
		},
	},
	"funnel": {
		"default": {
			Target: "funnel", Integrator: "verlet",
			TargetParams: map[string]float64{"dim": 5},
			StepSize:     0.02, NumIntegrationSteps: 50,
			NumSamples: 20000,
		},
	},
}

func GetPreset(targetName, presetName string) *Config {
	group, ok := Presets[targetName]
	if !ok {
		return nil
	}
	return group[presetName]
}

func ListPresets(targetName string) []string {
	group, ok := Presets[targetName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
