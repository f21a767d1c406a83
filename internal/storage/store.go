package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/hmclab/internal/sampler"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID                  string             `json:"id"`
	Target              string             `json:"target"`
	Timestamp           time.Time          `json:"timestamp"`
	Seed                uint64             `json:"seed"`
	StepSize            float64            `json:"step_size"`
	NumIntegrationSteps int                `json:"num_integration_steps"`
	Integrator          string             `json:"integrator"`
	NumSamples          int                `json:"num_samples"`
	Accepted            int                `json:"accepted"`
	Divergences         int                `json:"divergences"`
	Metrics             map[string]float64 `json:"metrics"`
}

func (s *Store) Save(targetName string, stepSize float64, numSteps int, seed uint64, integrator string, result *sampler.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", targetName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:                  runID,
		Target:              targetName,
		Timestamp:           time.Now(),
		Seed:                seed,
		StepSize:            stepSize,
		NumIntegrationSteps: numSteps,
		Integrator:          integrator,
		NumSamples:          len(result.Samples),
		Accepted:            result.Accepted,
		Divergences:         result.Divergences,
		Metrics:             result.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(result.Samples) == 0 {
		return runID, nil
	}

	first := result.Samples[0]
	header := []string{"step"}
	for _, name := range first.Names() {
		for i := range first[name] {
			header = append(header, fmt.Sprintf("%s%d", name, i))
		}
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, sample := range result.Samples {
		row := []string{strconv.Itoa(i)}
		for _, name := range sample.Names() {
			for _, val := range sample[name] {
				row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSamples reads a run's chain back as one column per flattened
// coordinate, plus the column names.
func (s *Store) LoadSamples(runID string) ([]string, [][]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return nil, [][]float64{}, nil
	}

	names := records[0][1:]
	cols := make([][]float64, len(names))
	for i := range cols {
		cols[i] = make([]float64, 0, len(records)-1)
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		for j := 1; j < len(record) && j-1 < len(cols); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			cols[j-1] = append(cols[j-1], val)
		}
	}

	return names, cols, nil
}
