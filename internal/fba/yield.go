package fba

import "github.com/san-kum/dynfba/internal/model"

// DefaultYield is the growth credited per mmol of substrate uptake
// when a reaction has no explicit yield entry.
const DefaultYield = 0.05

// YieldOracle is a lightweight reference backend: every uptake-capable
// exchange runs at its lower bound, and growth is a fixed yield per
// unit of uptake through the yield-bearing reactions. It is not an LP
// solver; it exists so the engine runs end to end without an external
// optimization service, and it documents the Oracle contract.
type YieldOracle struct {
	// BiomassReaction receives the computed growth flux.
	BiomassReaction string
	// Yields maps exchange reaction id to gDW produced per mmol taken
	// up. Reactions absent from the map contribute nothing.
	Yields map[string]float64
}

// NewYieldOracle builds a yield oracle crediting growth for the given
// exchange reactions at DefaultYield each.
func NewYieldOracle(biomassReaction string, substrates ...string) *YieldOracle {
	y := make(map[string]float64, len(substrates))
	for _, id := range substrates {
		y[id] = DefaultYield
	}
	return &YieldOracle{BiomassReaction: biomassReaction, Yields: y}
}

// Solve runs every yield-bearing exchange at its lower bound (maximal
// uptake) and derives the growth flux from the yields. Reactions
// without a yield entry carry zero flux. The status is always optimal:
// a yield model has no infeasible region.
func (o *YieldOracle) Solve(bounds model.BoundsSnapshot) (Solution, error) {
	fluxes := make(map[string]float64, len(o.Yields)+1)
	mu := 0.0
	for id, y := range o.Yields {
		b, ok := bounds[id]
		if !ok || b.Lower >= 0 {
			continue
		}
		fluxes[id] = b.Lower
		mu += y * -b.Lower
	}
	fluxes[o.BiomassReaction] = mu
	return Solution{Fluxes: fluxes, Status: StatusOptimal}, nil
}
