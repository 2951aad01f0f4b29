package sim

import (
	"fmt"

	"github.com/san-kum/dynfba/internal/fba"
)

// integrateConcentrations advances every tracked, non-setpoint
// concentration by one explicit Euler step:
//
//	C += flux * biomass * dtHours / volume
//
// Negative flux is net uptake. Setpoint metabolites are skipped
// entirely, emulating a held boundary condition. With clipNegative the
// result is floored at zero.
func integrateConcentrations(conc Concentrations, sol fba.Solution, exchangeMap map[string]string, setpoints map[string]float64, biomass, dtHours, volume float64, clipNegative bool) {
	for metID, rxnID := range exchangeMap {
		if _, tracked := conc[metID]; !tracked {
			continue
		}
		if _, held := setpoints[metID]; held {
			continue
		}
		delta := sol.Flux(rxnID) * biomass * dtHours / volume
		next := conc[metID] + delta
		if clipNegative && next < 0 {
			next = 0
		}
		conc[metID] = next
	}
}

// integrateBiomass advances biomass by one explicit Euler step of
// dX/dt = mu * inhibition * X. An inhibition term outside [0, 1] is a
// contract violation and fails hard rather than being clamped.
func integrateBiomass(biomass, mu, inhibition, dtHours float64) (float64, error) {
	if inhibition < 0 || inhibition > 1 {
		return biomass, fmt.Errorf("%w: got %g", ErrInhibitionRange, inhibition)
	}
	return biomass + mu*inhibition*biomass*dtHours, nil
}
