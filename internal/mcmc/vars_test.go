package mcmc

import (
	"math"
	"testing"
)

func TestVarsCloneIndependence(t *testing.T) {
	v := Vars{"x": {1.0, 2.0}, "y": {3.0}}
	c := v.Clone()

	c["x"][0] = 99.0
	if v["x"][0] != 1.0 {
		t.Error("clone should not share storage")
	}
}

func TestVarsAddScaled(t *testing.T) {
	v := Vars{"x": {1.0, 2.0}}
	o := Vars{"x": {10.0, 20.0}}

	r := v.AddScaled(o, 0.5)
	if r["x"][0] != 6.0 || r["x"][1] != 12.0 {
		t.Errorf("unexpected result: %v", r["x"])
	}

	// Inputs untouched.
	if v["x"][0] != 1.0 || o["x"][0] != 10.0 {
		t.Error("AddScaled should not mutate inputs")
	}
}

func TestVarsFlattenRoundtrip(t *testing.T) {
	v := Vars{"b": {3.0, 4.0}, "a": {1.0, 2.0}}

	flat := v.Flatten()
	// Sorted name order: a before b.
	expected := []float64{1.0, 2.0, 3.0, 4.0}
	for i := range expected {
		if flat[i] != expected[i] {
			t.Fatalf("flat[%d] = %f, expected %f", i, flat[i], expected[i])
		}
	}

	back := v.Unflatten(flat)
	if !back.Equal(v) {
		t.Error("unflatten(flatten(v)) should equal v")
	}
}

func TestVarsEqual(t *testing.T) {
	a := Vars{"x": {1.0}}
	b := Vars{"x": {1.0}}

	if !a.Equal(b) {
		t.Error("identical values should be equal")
	}
	if a.Equal(Vars{"x": {1.0, 2.0}}) {
		t.Error("different shapes should not be equal")
	}
	if a.Equal(Vars{"y": {1.0}}) {
		t.Error("different names should not be equal")
	}
}

func TestVarsWithinTol(t *testing.T) {
	a := Vars{"x": {1.0}}
	b := Vars{"x": {1.0 + 1e-10}}

	if !a.WithinTol(b, 1e-9) {
		t.Error("expected within tolerance")
	}
	if a.WithinTol(b, 1e-12) {
		t.Error("expected outside tolerance")
	}
}

func TestVarsIsFinite(t *testing.T) {
	if !(Vars{"x": {1.0, -2.0}}).IsFinite() {
		t.Error("finite values reported non-finite")
	}
	if (Vars{"x": {math.NaN()}}).IsFinite() {
		t.Error("NaN reported finite")
	}
	if (Vars{"x": {math.Inf(1)}}).IsFinite() {
		t.Error("Inf reported finite")
	}
}
