package model

import (
	"fmt"
	"sort"
)

// Metabolite is a chemical species in the network. Compartment "e"
// marks extracellular species.
type Metabolite struct {
	ID          string
	Name        string
	Compartment string
}

// Reaction is a stoichiometric reaction with flux bounds. Metabolites
// maps metabolite id to its stoichiometric coefficient (negative for
// consumption).
type Reaction struct {
	ID          string
	Name        string
	LowerBound  float64
	UpperBound  float64
	Objective   float64
	Metabolites map[string]float64
}

// Model is a read-only metabolic network. Flux bounds carried on the
// reactions are the network's declared defaults; per-step dynamic
// bounds live in a BoundsSnapshot owned by each simulation, so two
// simulations sharing a Model never alias mutable state.
type Model struct {
	ID          string
	Reactions   map[string]*Reaction
	Metabolites map[string]*Metabolite
}

// Bounds is a [lower, upper] flux interval for one reaction.
type Bounds struct {
	Lower float64
	Upper float64
}

// BoundsSnapshot is the full set of reaction bounds handed to a flux
// oracle for one solve. Each simulation owns its own snapshot.
type BoundsSnapshot map[string]Bounds

// Clone returns an independent copy of the snapshot.
func (b BoundsSnapshot) Clone() BoundsSnapshot {
	c := make(BoundsSnapshot, len(b))
	for id, bd := range b {
		c[id] = bd
	}
	return c
}

// Reaction returns the reaction with the given id.
func (m *Model) Reaction(id string) (*Reaction, bool) {
	r, ok := m.Reactions[id]
	return r, ok
}

// Exchanges returns the boundary reactions: reactions touching exactly
// one metabolite. Order is deterministic (sorted by id).
func (m *Model) Exchanges() []*Reaction {
	ex := make([]*Reaction, 0)
	for _, r := range m.Reactions {
		if len(r.Metabolites) == 1 {
			ex = append(ex, r)
		}
	}
	sort.Slice(ex, func(i, j int) bool { return ex[i].ID < ex[j].ID })
	return ex
}

// ExchangeMap maps each extracellular metabolite id to its exchange
// reaction id. Only single-metabolite boundary reactions whose
// metabolite sits in the "e" compartment qualify.
func (m *Model) ExchangeMap() map[string]string {
	em := make(map[string]string)
	for _, r := range m.Exchanges() {
		for metID := range r.Metabolites {
			met, ok := m.Metabolites[metID]
			if !ok || met.Compartment != "e" {
				continue
			}
			em[metID] = r.ID
		}
	}
	return em
}

// DeclaredBounds builds a fresh bounds snapshot from the network's
// default reaction bounds.
func (m *Model) DeclaredBounds() BoundsSnapshot {
	b := make(BoundsSnapshot, len(m.Reactions))
	for id, r := range m.Reactions {
		b[id] = Bounds{Lower: r.LowerBound, Upper: r.UpperBound}
	}
	return b
}

// BiomassReaction returns the reaction carrying a nonzero objective
// coefficient, if any.
func (m *Model) BiomassReaction() (string, bool) {
	for id, r := range m.Reactions {
		if r.Objective != 0 {
			return id, true
		}
	}
	return "", false
}

// Validate checks referential integrity: every metabolite referenced
// by a reaction must be declared.
func (m *Model) Validate() error {
	for _, r := range m.Reactions {
		if r.LowerBound > r.UpperBound {
			return fmt.Errorf("model %s: reaction %s has lower bound %g above upper bound %g",
				m.ID, r.ID, r.LowerBound, r.UpperBound)
		}
		for metID := range r.Metabolites {
			if _, ok := m.Metabolites[metID]; !ok {
				return fmt.Errorf("model %s: reaction %s references unknown metabolite %s", m.ID, r.ID, metID)
			}
		}
	}
	return nil
}
