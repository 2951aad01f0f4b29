package sim

import (
	"sort"
	"strings"

	"github.com/san-kum/dynfba/internal/model"
)

// inhibitionFactor computes the multiplicative growth-inhibition term
// from accumulated products. For every reaction with a Kn parameter,
// each of its extracellular tracked metabolites contributes a factor
// Kn/(Kn+C); independent inhibitors compound multiplicatively. With
// well-formed parameters the result lies in (0, 1]; the caller
// enforces the range and fails hard outside it.
func inhibitionFactor(m *model.Model, conc Concentrations, kn map[string]float64) float64 {
	factor := 1.0
	for _, rxnID := range sortedKeys(kn) {
		rxn, ok := m.Reaction(rxnID)
		if !ok {
			continue // validated at construction
		}
		knVal := kn[rxnID]
		for metID := range rxn.Metabolites {
			if !strings.HasSuffix(metID, "_e") {
				continue
			}
			c, tracked := conc[metID]
			if !tracked {
				continue
			}
			if c < 0 {
				c = 0
			}
			if c > 0 {
				factor *= knVal / (knVal + c)
			}
		}
	}
	return factor
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
