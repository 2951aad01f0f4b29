package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/dynfba/internal/sim"
)

// ExportData is the JSON export shape: run metadata plus the full
// time series laid out by column name.
type ExportData struct {
	Meta    RunMetadata          `json:"meta"`
	Columns []string             `json:"columns"`
	Series  map[string][]float64 `json:"series"`
}

// ExportJSON writes a run's metadata and series as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, series *sim.TimeSeries) error {
	cols := series.Columns()
	data := ExportData{
		Meta:    meta,
		Columns: cols,
		Series:  make(map[string][]float64, len(cols)),
	}
	for _, name := range cols {
		col, ok := series.Column(name)
		if ok {
			data.Series[name] = col
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportJSONFile writes the export to a file path.
func ExportJSONFile(path string, meta RunMetadata, series *sim.TimeSeries) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return ExportJSON(file, meta, series)
}
