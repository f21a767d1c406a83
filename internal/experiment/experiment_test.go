package experiment

import (
	"context"
	"testing"

	"github.com/san-kum/hmclab/internal/mcmc"
)

func TestNewUnknownTarget(t *testing.T) {
	_, err := New(Config{Target: "cauchy", StepSize: 0.1, NumIntegrationSteps: 10, NumSamples: 10})
	if err == nil {
		t.Error("expected error for unknown target")
	}
}

func TestNewUnknownIntegrator(t *testing.T) {
	_, err := New(Config{
		Target: "std_normal", Integrator: "rk4",
		StepSize: 0.1, NumIntegrationSteps: 10, NumSamples: 10,
	})
	if err == nil {
		t.Error("expected error for unknown integrator")
	}
}

func TestRunSmoke(t *testing.T) {
	exp, err := New(Config{
		Target:              "std_normal",
		StepSize:            0.1,
		NumIntegrationSteps: 10,
		NumSamples:          200,
		Seed:                3,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Samples) != 200 {
		t.Errorf("expected 200 samples, got %d", len(result.Samples))
	}
	if _, ok := result.Metrics["acceptance_rate"]; !ok {
		t.Error("default metrics missing from result")
	}
}

func TestRunDefaultMassMatrix(t *testing.T) {
	// Funnel has dim 6; an empty mass matrix must default to identity of
	// the right dimension instead of failing.
	exp, err := New(Config{
		Target:              "funnel",
		TargetParams:        map[string]float64{"dim": 5},
		StepSize:            0.01,
		NumIntegrationSteps: 10,
		NumSamples:          20,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := exp.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRunEnsemble(t *testing.T) {
	exp, err := New(Config{
		Target:              "std_normal",
		StepSize:            0.1,
		NumIntegrationSteps: 10,
		NumSamples:          50,
		Seed:                5,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	results, err := exp.RunEnsemble(context.Background(), 3)
	if err != nil {
		t.Fatalf("RunEnsemble: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 chains, got %d", len(results))
	}
}

func TestRunCoupled(t *testing.T) {
	exp, err := New(Config{
		Target:              "std_normal",
		StepSize:            0.1,
		NumIntegrationSteps: 10,
		NumSamples:          500,
		Seed:                7,
		InitialPosition:     mcmc.Vars{"x": {2.0}},
		SecondPosition:      mcmc.Vars{"x": {-2.0}},
		CouplingTolerance:   1e-9,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := exp.RunCoupled(context.Background())
	if err != nil {
		t.Fatalf("RunCoupled: %v", err)
	}
	if result.MeetingTime < 0 {
		t.Error("coupled chains did not meet on an easy target")
	}
}

func TestRunCoupledNeedsSecondPosition(t *testing.T) {
	exp, err := New(Config{
		Target: "std_normal", StepSize: 0.1, NumIntegrationSteps: 10, NumSamples: 10,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := exp.RunCoupled(context.Background()); err == nil {
		t.Error("expected error without a second position")
	}
}

func TestGetIntegrator(t *testing.T) {
	if _, err := GetIntegrator(""); err != nil {
		t.Errorf("empty name should select the default: %v", err)
	}
	if _, err := GetIntegrator("position-verlet"); err != nil {
		t.Errorf("position-verlet should resolve: %v", err)
	}
	if _, err := GetIntegrator("rk4"); err == nil {
		t.Error("unknown integrator should error")
	}
}

func TestDefaultMetrics(t *testing.T) {
	ms := DefaultMetrics(mcmc.Vars{"x": {0.0}})
	if len(ms) != 4 {
		t.Errorf("expected 4 default metrics, got %d", len(ms))
	}
}
