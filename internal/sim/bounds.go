package sim

import "github.com/san-kum/dynfba/internal/model"

// essentialBound is the permissive symmetric bound applied once to the
// essential exchange set so non-limiting nutrients never starve the
// organism.
const essentialBound = 1000.0

// DefaultEssentialExchanges is the standard ion/gas/water exchange set
// given wide bounds when the config does not override it.
var DefaultEssentialExchanges = []string{
	"EX_nh4_e", "EX_pi_e", "EX_h_e", "EX_h2o_e",
	"EX_k_e", "EX_na1_e", "EX_cl_e", "EX_mg2_e", "EX_ca2_e", "EX_fe2_e",
}

// applyEssentialBounds sets [-1000, 1000] on every listed reaction
// present in the snapshot. Unknown ids are skipped: missing essential
// exchanges are configuration looseness, not an error.
func applyEssentialBounds(bounds model.BoundsSnapshot, essentials []string) {
	for _, id := range essentials {
		if _, ok := bounds[id]; !ok {
			continue
		}
		bounds[id] = model.Bounds{Lower: -essentialBound, Upper: essentialBound}
	}
}

// updateUptakeBounds rewrites the lower bound of every tracked
// exchange reaction from the current concentration using saturation
// kinetics: lb = -Vmax*C/(Km+C), zero at zero concentration. Upper
// bounds are untouched. Metabolites outside the exchange map or the
// tracked set are left alone.
func updateUptakeBounds(bounds model.BoundsSnapshot, conc Concentrations, kin Kinetics, exchangeMap map[string]string) {
	for metID, rxnID := range exchangeMap {
		c, tracked := conc[metID]
		if !tracked {
			continue
		}
		if c < 0 {
			c = 0
		}

		uptake := 0.0
		if c > 0 {
			vmax := kin.VmaxFor(rxnID)
			km := kin.KmFor(rxnID)
			uptake = -vmax * c / (km + c)
		}

		b := bounds[rxnID]
		b.Lower = uptake
		bounds[rxnID] = b
	}
}
