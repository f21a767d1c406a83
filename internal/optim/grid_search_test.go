package optim

import (
	"context"
	"testing"

	"github.com/san-kum/hmclab/internal/experiment"
	"github.com/san-kum/hmclab/internal/sampler"
)

func TestSearchMinimizes(t *testing.T) {
	g := NewGridSearch(
		[]string{"step_size", "num_steps"},
		[][]float64{{0.1, 0.3}, {5, 10}},
	)

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		return experiment.New(experiment.Config{
			Target:              "std_normal",
			StepSize:            params["step_size"],
			NumIntegrationSteps: int(params["num_steps"]),
			NumSamples:          50,
			Seed:                1,
		})
	}

	best, bestScore, err := g.Search(context.Background(), build, func(r *sampler.Result) float64 {
		return float64(r.Accepted)
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if best == nil {
		t.Fatal("no best parameters found")
	}
	if bestScore > 50 {
		t.Errorf("best score %f exceeds chain length", bestScore)
	}
	if _, ok := best["step_size"]; !ok {
		t.Error("best parameters missing step_size")
	}
}

func TestSearchCancelled(t *testing.T) {
	g := NewGridSearch([]string{"step_size"}, [][]float64{{0.1, 0.2}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := g.Search(ctx, func(params map[string]float64) (*experiment.Experiment, error) {
		return experiment.New(experiment.Config{
			Target: "std_normal", StepSize: params["step_size"],
			NumIntegrationSteps: 5, NumSamples: 10,
		})
	}, func(r *sampler.Result) float64 { return 0 })
	if err == nil {
		t.Error("expected context error")
	}
}

func TestNegativeESS(t *testing.T) {
	exp, err := experiment.New(experiment.Config{
		Target: "std_normal", StepSize: 0.5, NumIntegrationSteps: 10,
		NumSamples: 500, Seed: 2,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	score := NegativeESS("x", 0)(result)
	if score >= 0 {
		t.Errorf("negated ESS should be negative, got %f", score)
	}
}
