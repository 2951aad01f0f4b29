// Package fba defines the flux-optimization contract the simulation
// engine consumes. The engine never looks inside a solver: it hands an
// Oracle a bounds snapshot and consumes a flux assignment plus a
// status. Any LP backend can sit behind the interface.
package fba

import (
	"github.com/san-kum/dynfba/internal/model"
)

// Status is the outcome of one solve.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusOther
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "other"
	}
}

// Solution is one flux assignment. Fluxes are in mmol/gDW/hr; a
// missing reaction id reads as zero flux.
type Solution struct {
	Fluxes map[string]float64
	Status Status
}

// Flux returns the flux through reaction id, zero if unassigned.
func (s Solution) Flux(id string) float64 {
	return s.Fluxes[id]
}

// Oracle solves the flux-optimization problem for one set of bounds.
// Solve is synchronous and total: it always returns a Solution, and a
// non-optimal status is a signaled result, not an error. The error
// return is reserved for backend faults (I/O, process death), which
// callers treat as fatal.
type Oracle interface {
	Solve(bounds model.BoundsSnapshot) (Solution, error)
}
