package storage

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Index is a SQLite catalog of runs kept next to the run directories,
// so listing stays fast once runs accumulate. The per-run directories
// remain the source of truth; the index only carries metadata.
type Index struct {
	sql *sql.DB
}

// OpenIndex opens (or creates) the run index inside baseDir.
func OpenIndex(baseDir string) (*Index, error) {
	path := filepath.Join(baseDir, "runs.db")
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping index: %w", err)
	}
	idx := &Index{sql: db}
	if err := idx.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate index: %w", err)
	}
	return idx, nil
}

func (i *Index) Close() error {
	return i.sql.Close()
}

func (i *Index) migrate() error {
	_, err := i.sql.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id            TEXT PRIMARY KEY,
			model         TEXT NOT NULL,
			oracle        TEXT NOT NULL,
			timestamp     TEXT NOT NULL,
			dt            REAL NOT NULL,
			volume        REAL NOT NULL,
			steps         INTEGER NOT NULL,
			final_biomass REAL NOT NULL,
			feasible      INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp);
	`)
	return err
}

// Put inserts or replaces one run record.
func (i *Index) Put(meta RunMetadata) error {
	_, err := i.sql.Exec(`
		INSERT OR REPLACE INTO runs
			(id, model, oracle, timestamp, dt, volume, steps, final_biomass, feasible)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Model, meta.Oracle, meta.Timestamp.Format(time.RFC3339Nano),
		meta.Dt, meta.Volume, meta.Steps, meta.FinalBiomass, boolToInt(meta.Feasible),
	)
	return err
}

// List returns all indexed runs, newest first.
func (i *Index) List() ([]RunMetadata, error) {
	rows, err := i.sql.Query(`
		SELECT id, model, oracle, timestamp, dt, volume, steps, final_biomass, feasible
		FROM runs ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		var meta RunMetadata
		var ts string
		var feasible int
		if err := rows.Scan(&meta.ID, &meta.Model, &meta.Oracle, &ts,
			&meta.Dt, &meta.Volume, &meta.Steps, &meta.FinalBiomass, &feasible); err != nil {
			return nil, err
		}
		meta.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		meta.Feasible = feasible != 0
		runs = append(runs, meta)
	}
	return runs, rows.Err()
}

// Get returns one indexed run, sql.ErrNoRows if absent.
func (i *Index) Get(runID string) (*RunMetadata, error) {
	var meta RunMetadata
	var ts string
	var feasible int
	err := i.sql.QueryRow(`
		SELECT id, model, oracle, timestamp, dt, volume, steps, final_biomass, feasible
		FROM runs WHERE id = ?`, runID).
		Scan(&meta.ID, &meta.Model, &meta.Oracle, &ts,
			&meta.Dt, &meta.Volume, &meta.Steps, &meta.FinalBiomass, &feasible)
	if err != nil {
		return nil, err
	}
	meta.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	meta.Feasible = feasible != 0
	return &meta, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
