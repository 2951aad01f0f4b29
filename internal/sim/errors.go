package sim

import "errors"

// Domain errors for dynamic-FBA runs.
var (
	// ErrUnknownSetpoint indicates a setpoint on a metabolite that is
	// not tracked in the external concentrations.
	ErrUnknownSetpoint = errors.New("sim: setpoint metabolite not tracked")

	// ErrUnknownReaction indicates a kinetic or inhibition parameter
	// referencing a reaction absent from the network.
	ErrUnknownReaction = errors.New("sim: parameter references unknown reaction")

	// ErrInhibitionRange indicates an inhibition factor outside [0, 1],
	// a parameter or arithmetic bug rather than a physical condition.
	ErrInhibitionRange = errors.New("sim: inhibition factor out of [0, 1]")

	// ErrNoBiomassReaction indicates no growth objective could be
	// resolved from config or model.
	ErrNoBiomassReaction = errors.New("sim: no biomass reaction configured")
)
