package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportData is the full JSON export of a stored run: metadata plus the
// chain itself, one column per flattened coordinate.
type ExportData struct {
	Meta    RunMetadata `json:"meta"`
	Columns []string    `json:"columns"`
	Samples [][]float64 `json:"samples"`
}

// ExportJSON writes a run's metadata and samples to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	names, cols, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	// Transpose to one row per sample for a natural JSON layout.
	numRows := 0
	if len(cols) > 0 {
		numRows = len(cols[0])
	}
	rows := make([][]float64, numRows)
	for i := range rows {
		row := make([]float64, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		rows[i] = row
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Meta: *meta, Columns: names, Samples: rows})
}

// ExportJSONFile writes the export to a file.
func (s *Store) ExportJSONFile(path, runID string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return s.ExportJSON(file, runID)
}
