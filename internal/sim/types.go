package sim

import "sort"

// Concentrations maps a metabolite id to its extracellular
// concentration in mmol/L.
type Concentrations map[string]float64

func (c Concentrations) Clone() Concentrations {
	out := make(Concentrations, len(c))
	for id, v := range c {
		out[id] = v
	}
	return out
}

// Kinetic defaults, applied to any exchange reaction without an
// explicit override.
const (
	DefaultVmax = 10.0 // mmol/gDW/hr
	DefaultKm   = 0.01 // mmol/L
)

// SecondsPerHour converts the wall timestep (seconds) into the flux
// time base (hours).
const SecondsPerHour = 3600.0

// Kinetics holds sparse per-reaction parameter overrides: Vmax and Km
// for saturating uptake, Kn for product inhibition.
type Kinetics struct {
	Vmax map[string]float64
	Km   map[string]float64
	Kn   map[string]float64
}

// VmaxFor returns the uptake capacity for a reaction.
func (k Kinetics) VmaxFor(reactionID string) float64 {
	if v, ok := k.Vmax[reactionID]; ok {
		return v
	}
	return DefaultVmax
}

// KmFor returns the saturation constant for a reaction.
func (k Kinetics) KmFor(reactionID string) float64 {
	if v, ok := k.Km[reactionID]; ok {
		return v
	}
	return DefaultKm
}

// Snapshot is one recorded step: simulated time in seconds, biomass in
// gDW, and every tracked concentration.
type Snapshot struct {
	Time    float64
	Biomass float64
	Conc    Concentrations
}

// TimeSeries is the ordered record of completed steps. Its column
// shape is fixed at construction: "time", "biomass", then the tracked
// metabolite ids in sorted order.
type TimeSeries struct {
	Metabolites []string
	Snapshots   []Snapshot
}

// NewTimeSeries fixes the column shape from the tracked set.
func NewTimeSeries(conc Concentrations) *TimeSeries {
	mets := make([]string, 0, len(conc))
	for id := range conc {
		mets = append(mets, id)
	}
	sort.Strings(mets)
	return &TimeSeries{Metabolites: mets}
}

// Append records one completed step. The concentration map is copied.
func (ts *TimeSeries) Append(t, biomass float64, conc Concentrations) {
	ts.Snapshots = append(ts.Snapshots, Snapshot{
		Time:    t,
		Biomass: biomass,
		Conc:    conc.Clone(),
	})
}

func (ts *TimeSeries) Len() int { return len(ts.Snapshots) }

// Columns returns the full header: time, biomass, metabolites.
func (ts *TimeSeries) Columns() []string {
	cols := make([]string, 0, len(ts.Metabolites)+2)
	cols = append(cols, "time", "biomass")
	cols = append(cols, ts.Metabolites...)
	return cols
}

// Row returns snapshot i laid out per Columns.
func (ts *TimeSeries) Row(i int) []float64 {
	s := ts.Snapshots[i]
	row := make([]float64, 0, len(ts.Metabolites)+2)
	row = append(row, s.Time, s.Biomass)
	for _, id := range ts.Metabolites {
		row = append(row, s.Conc[id])
	}
	return row
}

// Column returns the series for one column name; ok is false for an
// unknown column.
func (ts *TimeSeries) Column(name string) ([]float64, bool) {
	out := make([]float64, 0, len(ts.Snapshots))
	switch name {
	case "time":
		for _, s := range ts.Snapshots {
			out = append(out, s.Time)
		}
		return out, true
	case "biomass":
		for _, s := range ts.Snapshots {
			out = append(out, s.Biomass)
		}
		return out, true
	}
	found := false
	for _, id := range ts.Metabolites {
		if id == name {
			found = true
			break
		}
	}
	if !found {
		return nil, false
	}
	for _, s := range ts.Snapshots {
		out = append(out, s.Conc[name])
	}
	return out, true
}
