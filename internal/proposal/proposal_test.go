package proposal

import (
	"math"
	"testing"

	"github.com/san-kum/hmclab/internal/mcmc"
)

func zeroKE(p mcmc.Vars) float64 { return 0 }

func stateWithEnergy(e float64) mcmc.State {
	return mcmc.State{
		Position:        mcmc.Vars{"x": {0.0}},
		Momentum:        mcmc.Vars{"x": {0.0}},
		PotentialEnergy: e,
	}
}

func TestNewTotalEnergy(t *testing.T) {
	s := stateWithEnergy(3.0)
	ke := func(p mcmc.Vars) float64 { return 1.5 }

	prop := New(ke, s)
	if prop.Energy != 4.5 {
		t.Errorf("energy = %f, expected 4.5", prop.Energy)
	}
	if prop.Weight != 0 {
		t.Errorf("initial proposal weight = %f, expected 0", prop.Weight)
	}
}

func TestGenerateWeight(t *testing.T) {
	end := stateWithEnergy(1.0)

	prop, diverging := Generate(1.5, end, zeroKE, 1000)
	if diverging {
		t.Error("small energy change flagged divergent")
	}
	// weight = -(endEnergy - initialEnergy) = 0.5
	if math.Abs(prop.Weight-0.5) > 1e-12 {
		t.Errorf("weight = %f, expected 0.5", prop.Weight)
	}
}

func TestGenerateDivergence(t *testing.T) {
	end := stateWithEnergy(2000.0)

	prop, diverging := Generate(0.0, end, zeroKE, 1000)
	if !diverging {
		t.Error("energy change above threshold not flagged divergent")
	}
	if !math.IsInf(prop.Weight, -1) {
		t.Errorf("divergent weight = %f, expected -Inf", prop.Weight)
	}

	// Large negative changes diverge too: the criterion is the magnitude.
	_, diverging = Generate(2000.0, stateWithEnergy(0.0), zeroKE, 1000)
	if !diverging {
		t.Error("large negative energy change not flagged divergent")
	}
}

func TestGenerateNonFiniteEnergy(t *testing.T) {
	for _, e := range []float64{math.NaN(), math.Inf(1)} {
		prop, diverging := Generate(0.0, stateWithEnergy(e), zeroKE, 1000)
		if !diverging {
			t.Errorf("non-finite end energy %f not flagged divergent", e)
		}
		_, _, pAccept := StaticBinomial(0.0, Proposal{}, prop)
		if pAccept != 0 {
			t.Errorf("acceptance probability %f for non-finite energy, expected 0", pAccept)
		}
	}
}

func TestStaticBinomialBounds(t *testing.T) {
	initial := Proposal{State: stateWithEnergy(1.0)}

	// Downhill move: weight > 0 means pAccept caps at 1.
	_, accepted, pAccept := StaticBinomial(0.999, initial, Proposal{Weight: 2.0})
	if pAccept != 1 || !accepted {
		t.Errorf("downhill move: pAccept = %f accepted = %v", pAccept, accepted)
	}

	// Uphill move: pAccept = exp(weight) in (0, 1).
	_, _, pAccept = StaticBinomial(0.5, initial, Proposal{Weight: -1.0})
	if math.Abs(pAccept-math.Exp(-1)) > 1e-12 {
		t.Errorf("pAccept = %f, expected exp(-1)", pAccept)
	}
}

func TestStaticBinomialSelectsState(t *testing.T) {
	initial := Proposal{State: stateWithEnergy(1.0)}
	proposed := Proposal{State: stateWithEnergy(2.0), Weight: -1.0}

	// exp(-1) ~ 0.368: u below accepts, u above rejects.
	sampled, accepted, _ := StaticBinomial(0.2, initial, proposed)
	if !accepted || sampled.State.PotentialEnergy != 2.0 {
		t.Error("u below pAccept should accept the proposal")
	}

	sampled, accepted, _ = StaticBinomial(0.9, initial, proposed)
	if accepted || sampled.State.PotentialEnergy != 1.0 {
		t.Error("u above pAccept should keep the initial state")
	}
}
