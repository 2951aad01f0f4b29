// Package batch runs independent simulations concurrently. Each run
// gets its own simulator, bounds, and concentrations; the shared Model
// is read-only, so nothing aliases across runs.
package batch

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/dynfba/internal/fba"
	"github.com/san-kum/dynfba/internal/model"
	"github.com/san-kum/dynfba/internal/sim"
)

// Run is one labeled simulation in a batch.
type Run struct {
	Label  string
	Config sim.Config
	Steps  int
}

// Result carries the outcome of one batch entry.
type Result struct {
	Label        string
	Series       *sim.TimeSeries
	FinalBiomass float64
	Feasible     bool
}

// Execute runs every entry with at most workers in flight. Oracles
// may be stateful, so each run gets a fresh one from the factory.
// Infeasible runs are normal results; only contract violations and
// oracle faults abort the batch.
func Execute(ctx context.Context, m *model.Model, newOracle func() fba.Oracle, runs []Run, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(runs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, run := range runs {
		i, run := i, run
		g.Go(func() error {
			s, err := sim.New(m, newOracle(), run.Config)
			if err != nil {
				return fmt.Errorf("batch %q: %w", run.Label, err)
			}
			if err := s.Run(ctx, run.Steps, false); err != nil {
				return fmt.Errorf("batch %q: %w", run.Label, err)
			}
			results[i] = Result{
				Label:        run.Label,
				Series:       s.Series(),
				FinalBiomass: s.Biomass(),
				Feasible:     s.Feasible(),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SweepConcentration builds runs varying one metabolite's initial
// concentration across values.
func SweepConcentration(base sim.Config, steps int, metabolite string, values []float64) []Run {
	runs := make([]Run, 0, len(values))
	for _, v := range values {
		cfg := base
		cfg.ExtConc = cloneFloats(base.ExtConc)
		if cfg.ExtConc == nil {
			cfg.ExtConc = make(map[string]float64, 1)
		}
		cfg.ExtConc[metabolite] = v
		runs = append(runs, Run{
			Label:  fmt.Sprintf("%s=%g", metabolite, v),
			Config: cfg,
			Steps:  steps,
		})
	}
	return runs
}

// SweepVmax builds runs varying one reaction's uptake capacity.
func SweepVmax(base sim.Config, steps int, reaction string, values []float64) []Run {
	runs := make([]Run, 0, len(values))
	for _, v := range values {
		cfg := base
		cfg.Kinetics.Vmax = cloneFloats(base.Kinetics.Vmax)
		if cfg.Kinetics.Vmax == nil {
			cfg.Kinetics.Vmax = make(map[string]float64, 1)
		}
		cfg.Kinetics.Vmax[reaction] = v
		runs = append(runs, Run{
			Label:  fmt.Sprintf("vmax(%s)=%g", reaction, v),
			Config: cfg,
			Steps:  steps,
		})
	}
	return runs
}

func cloneFloats(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
