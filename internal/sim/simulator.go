package sim

import (
	"context"
	"fmt"
	"log"

	"github.com/san-kum/dynfba/internal/fba"
	"github.com/san-kum/dynfba/internal/model"
)

// Config holds the per-run options of a dynamic-FBA simulation.
// Fluxes are mmol/gDW/hr, concentrations mmol/L, biomass gDW, volume
// L, Dt seconds.
type Config struct {
	BiomassReaction    string
	Dt                 float64
	Volume             float64
	InitialBiomass     float64
	Kinetics           Kinetics
	ExtConc            map[string]float64
	Setpoints          map[string]float64
	EssentialExchanges []string
	ClipNegative       bool
}

// DefaultConfig mirrors the standard batch-culture setup.
func DefaultConfig() Config {
	return Config{
		BiomassReaction: "Biomass_Ecoli_core",
		Dt:              0.01,
		Volume:          1.0,
		InitialBiomass:  2.0,
		ClipNegative:    true,
	}
}

// Simulator advances the coupled concentration/biomass recurrence one
// timestep at a time, consulting a flux oracle each step. It owns all
// mutable run state; two simulators built from the same Model never
// alias bounds or concentrations, so batch runs are safe.
//
// Simulator is not safe for concurrent use.
type Simulator struct {
	model  *model.Model
	oracle fba.Oracle
	cfg    Config

	dtHours     float64
	exchangeMap map[string]string
	bounds      model.BoundsSnapshot

	conc     Concentrations
	biomass  float64
	feasible bool
	series   *TimeSeries

	logf func(format string, args ...any)
}

// New validates the configuration and builds a ready-to-step
// simulator. Tracked concentrations default to zero for every
// metabolite exchanged by the network; setpoints must name tracked
// metabolites; inhibition parameters must name known reactions.
// Essential exchanges get wide bounds once, here.
func New(m *model.Model, oracle fba.Oracle, cfg Config) (*Simulator, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Volume <= 0 {
		return nil, fmt.Errorf("sim: volume must be positive, got %g", cfg.Volume)
	}
	if cfg.InitialBiomass <= 0 {
		return nil, fmt.Errorf("sim: initial biomass must be positive, got %g", cfg.InitialBiomass)
	}
	if cfg.BiomassReaction == "" {
		id, ok := m.BiomassReaction()
		if !ok {
			return nil, ErrNoBiomassReaction
		}
		cfg.BiomassReaction = id
	}
	if _, ok := m.Reaction(cfg.BiomassReaction); !ok {
		return nil, fmt.Errorf("%w: biomass reaction %s", ErrUnknownReaction, cfg.BiomassReaction)
	}
	for rxnID := range cfg.Kinetics.Kn {
		if _, ok := m.Reaction(rxnID); !ok {
			return nil, fmt.Errorf("%w: inhibition parameter on %s", ErrUnknownReaction, rxnID)
		}
	}

	conc := make(Concentrations, len(cfg.ExtConc))
	for id, v := range cfg.ExtConc {
		conc[id] = v
	}
	// Every exchanged metabolite is tracked; unspecified ones start at
	// zero.
	for _, rxn := range m.Exchanges() {
		for metID := range rxn.Metabolites {
			if _, ok := conc[metID]; !ok {
				conc[metID] = 0
			}
		}
	}

	for id, v := range cfg.Setpoints {
		if _, ok := conc[id]; !ok {
			return nil, fmt.Errorf("%w: %s set to %g but not found in external concentrations", ErrUnknownSetpoint, id, v)
		}
		conc[id] = v
	}

	essentials := cfg.EssentialExchanges
	if len(essentials) == 0 {
		essentials = DefaultEssentialExchanges
	}
	bounds := m.DeclaredBounds()
	applyEssentialBounds(bounds, essentials)

	return &Simulator{
		model:       m,
		oracle:      oracle,
		cfg:         cfg,
		dtHours:     cfg.Dt / SecondsPerHour,
		exchangeMap: m.ExchangeMap(),
		bounds:      bounds,
		conc:        conc,
		biomass:     cfg.InitialBiomass,
		feasible:    true,
		series:      NewTimeSeries(conc),
		logf:        log.Printf,
	}, nil
}

// Step runs one full pipeline pass for step index t: dynamic bounds,
// inhibition, solve, integration, recording. It returns the growth
// rate and inhibition factor actually achieved. A non-optimal solver
// status flips the feasibility flag and skips integration and
// recording; it is not an error. Errors are reserved for contract
// violations and oracle faults.
func (s *Simulator) Step(t int) (mu, inhibition float64, err error) {
	updateUptakeBounds(s.bounds, s.conc, s.cfg.Kinetics, s.exchangeMap)

	inhibition = inhibitionFactor(s.model, s.conc, s.cfg.Kinetics.Kn)
	if inhibition < 0 || inhibition > 1 {
		return 0, inhibition, fmt.Errorf("%w: got %g at step %d", ErrInhibitionRange, inhibition, t)
	}

	sol, err := s.oracle.Solve(s.bounds.Clone())
	if err != nil {
		return 0, inhibition, fmt.Errorf("sim: solve failed at step %d: %w", t, err)
	}
	mu = sol.Flux(s.cfg.BiomassReaction)

	if sol.Status != fba.StatusOptimal {
		s.logf("solver status at step %d is %q, expected optimal; halting", t, sol.Status)
		s.feasible = false
		return mu, inhibition, nil
	}

	integrateConcentrations(s.conc, sol, s.exchangeMap, s.cfg.Setpoints,
		s.biomass, s.dtHours, s.cfg.Volume, s.cfg.ClipNegative)

	s.biomass, err = integrateBiomass(s.biomass, mu, inhibition, s.dtHours)
	if err != nil {
		return mu, inhibition, err
	}

	s.series.Append(s.cfg.Dt*float64(t), s.biomass, s.conc)
	return mu, inhibition, nil
}

// Run advances the simulation up to nSteps steps, stopping early and
// without error once the feasibility flag drops or ctx is done.
// Callers inspect Feasible and the recorded series afterwards.
func (s *Simulator) Run(ctx context.Context, nSteps int, verbose bool) error {
	if nSteps <= 0 {
		return fmt.Errorf("sim: steps must be positive, got %d", nSteps)
	}

	printEvery := nSteps / 10
	if printEvery == 0 {
		printEvery = 1
	}
	if verbose {
		s.logf("running dynamic FBA for %d steps with dt=%gs", nSteps, s.cfg.Dt)
	}

	for t := 0; t < nSteps; t++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if !s.feasible {
			break
		}
		if _, _, err := s.Step(t); err != nil {
			return err
		}
		if verbose && t%printEvery == 0 {
			s.logf("%.4f hours simulated, biomass %.4f gDW",
				float64(t)*s.dtHours, s.biomass)
		}
	}

	if verbose {
		s.logf("final biomass: %.4f gDW", s.biomass)
	}
	return nil
}

// Biomass returns the current biomass in gDW.
func (s *Simulator) Biomass() float64 { return s.biomass }

// Feasible reports whether every solve so far returned optimal. Once
// false it stays false.
func (s *Simulator) Feasible() bool { return s.feasible }

// Series returns the recorded time series.
func (s *Simulator) Series() *TimeSeries { return s.series }

// Concentrations returns a copy of the current tracked concentrations.
func (s *Simulator) Concentrations() Concentrations { return s.conc.Clone() }

// Bounds returns a copy of the current bounds snapshot.
func (s *Simulator) Bounds() model.BoundsSnapshot { return s.bounds.Clone() }

// SetLogger redirects diagnostics; nil restores the default.
func (s *Simulator) SetLogger(logf func(format string, args ...any)) {
	if logf == nil {
		logf = log.Printf
	}
	s.logf = logf
}
