package storage

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/san-kum/hmclab/internal/mcmc"
	"github.com/san-kum/hmclab/internal/sampler"
)

func testResult() *sampler.Result {
	return &sampler.Result{
		Samples: []mcmc.Vars{
			{"x": {1.0, 2.0}},
			{"x": {3.0, 4.0}},
			{"x": {5.0, 6.0}},
		},
		Metrics:     map[string]float64{"acceptance_rate": 0.97},
		Accepted:    3,
		Divergences: 0,
		StepsTaken:  3,
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := st.Save("normal", 0.01, 100, 19, "verlet", testResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if meta.Target != "normal" || meta.Seed != 19 || meta.StepSize != 0.01 {
		t.Errorf("metadata lost fields: %+v", meta)
	}
	if meta.NumSamples != 3 || meta.Accepted != 3 {
		t.Errorf("metadata counts wrong: %+v", meta)
	}
	if meta.Metrics["acceptance_rate"] != 0.97 {
		t.Errorf("metrics lost: %v", meta.Metrics)
	}
}

func TestLoadSamples(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := st.Save("normal", 0.01, 100, 19, "verlet", testResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	names, cols, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if len(names) != 2 || names[0] != "x0" || names[1] != "x1" {
		t.Fatalf("column names = %v", names)
	}
	if len(cols[0]) != 3 || cols[0][2] != 5.0 || cols[1][0] != 2.0 {
		t.Errorf("columns wrong: %v", cols)
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("fresh store should be empty, got %d runs", len(runs))
	}

	if _, err := st.Save("banana", 0.02, 50, 1, "verlet", testResult()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].Target != "banana" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestListMissingDir(t *testing.T) {
	st := New(t.TempDir() + "/does-not-exist")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if len(runs) != 0 {
		t.Error("missing dir should list no runs")
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	runID, err := st.Save("normal", 0.01, 100, 19, "verlet", testResult())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	var export ExportData
	if err := json.Unmarshal(buf.Bytes(), &export); err != nil {
		t.Fatalf("invalid JSON export: %v", err)
	}
	if export.Meta.ID != runID {
		t.Errorf("export meta ID = %s", export.Meta.ID)
	}
	if len(export.Samples) != 3 || len(export.Samples[0]) != 2 {
		t.Errorf("export samples shape wrong: %v", export.Samples)
	}
	if export.Samples[1][0] != 3.0 {
		t.Errorf("export sample value wrong: %v", export.Samples[1])
	}
}
