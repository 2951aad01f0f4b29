package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonModel mirrors the COBRA JSON schema, enough of it to recover
// stoichiometry, compartments, bounds, and the objective.
type jsonModel struct {
	ID          string           `json:"id"`
	Metabolites []jsonMetabolite `json:"metabolites"`
	Reactions   []jsonReaction   `json:"reactions"`
}

type jsonMetabolite struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Compartment string `json:"compartment"`
}

type jsonReaction struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Metabolites map[string]float64 `json:"metabolites"`
	LowerBound  float64            `json:"lower_bound"`
	UpperBound  float64            `json:"upper_bound"`
	Objective   float64            `json:"objective_coefficient"`
}

// LoadFile reads a COBRA-style JSON model file.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return Parse(data)
}

// Parse decodes a COBRA-style JSON model.
func Parse(data []byte) (*Model, error) {
	var jm jsonModel
	if err := json.Unmarshal(data, &jm); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	m := &Model{
		ID:          jm.ID,
		Reactions:   make(map[string]*Reaction, len(jm.Reactions)),
		Metabolites: make(map[string]*Metabolite, len(jm.Metabolites)),
	}
	for _, met := range jm.Metabolites {
		m.Metabolites[met.ID] = &Metabolite{
			ID:          met.ID,
			Name:        met.Name,
			Compartment: met.Compartment,
		}
	}
	for _, rxn := range jm.Reactions {
		stoich := make(map[string]float64, len(rxn.Metabolites))
		for id, coeff := range rxn.Metabolites {
			stoich[id] = coeff
		}
		m.Reactions[rxn.ID] = &Reaction{
			ID:          rxn.ID,
			Name:        rxn.Name,
			LowerBound:  rxn.LowerBound,
			UpperBound:  rxn.UpperBound,
			Objective:   rxn.Objective,
			Metabolites: stoich,
		}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load resolves a model by name: the built-in "textbook" network, or a
// path to a COBRA JSON file.
func Load(name string) (*Model, error) {
	if name == "" || name == "textbook" {
		return Textbook(), nil
	}
	if _, err := os.Stat(name); err == nil {
		return LoadFile(name)
	}
	return nil, fmt.Errorf("unknown model %q (not built in, not a file)", name)
}
