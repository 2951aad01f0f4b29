package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/dynfba/internal/sim"
)

// Store persists runs as one directory each: metadata.json plus
// timeseries.csv with columns time, biomass, then metabolite ids.
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
	ID           string    `json:"id"`
	Model        string    `json:"model"`
	Oracle       string    `json:"oracle"`
	Timestamp    time.Time `json:"timestamp"`
	Dt           float64   `json:"dt"`
	Volume       float64   `json:"volume"`
	Steps        int       `json:"steps"`
	FinalBiomass float64   `json:"final_biomass"`
	Feasible     bool      `json:"feasible"`
}

// Save writes one completed run and returns its id.
func (s *Store) Save(modelName, oracleName string, dt, volume float64, series *sim.TimeSeries, finalBiomass float64, feasible bool) (string, error) {
	runID := fmt.Sprintf("%s_%d", modelName, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Model:        modelName,
		Oracle:       oracleName,
		Timestamp:    time.Now(),
		Dt:           dt,
		Volume:       volume,
		Steps:        series.Len(),
		FinalBiomass: finalBiomass,
		Feasible:     feasible,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "timeseries.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write(series.Columns()); err != nil {
		return "", err
	}
	for i := 0; i < series.Len(); i++ {
		vals := series.Row(i)
		row := make([]string, len(vals))
		for j, v := range vals {
			row[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List scans run directories. The sqlite index is the fast path; this
// is the fallback and the source of truth.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads a saved time series back into memory.
func (s *Store) LoadSeries(runID string) (*sim.TimeSeries, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "timeseries.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("storage: run %s has an empty time series", runID)
	}

	header := records[0]
	if len(header) < 2 || header[0] != "time" || header[1] != "biomass" {
		return nil, fmt.Errorf("storage: run %s has malformed columns %v", runID, header)
	}
	mets := header[2:]

	ts := &sim.TimeSeries{Metabolites: append([]string(nil), mets...)}
	for _, record := range records[1:] {
		if len(record) != len(header) {
			return nil, fmt.Errorf("storage: run %s has a ragged row", runID)
		}
		vals := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: run %s: %w", runID, err)
			}
			vals[j] = v
		}
		conc := make(sim.Concentrations, len(mets))
		for j, id := range mets {
			conc[id] = vals[j+2]
		}
		ts.Snapshots = append(ts.Snapshots, sim.Snapshot{
			Time:    vals[0],
			Biomass: vals[1],
			Conc:    conc,
		})
	}
	return ts, nil
}
