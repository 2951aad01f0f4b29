package model

// Textbook builds a miniature aerobic E. coli core network: glucose
// uptake, acetate overflow, and a lumped biomass reaction. It is small
// enough to reason about by hand but carries the full structure a
// simulation needs (exchanges, transports, objective).
func Textbook() *Model {
	mets := []*Metabolite{
		{ID: "glc_e", Name: "D-Glucose", Compartment: "e"},
		{ID: "ac_e", Name: "Acetate", Compartment: "e"},
		{ID: "o2_e", Name: "O2", Compartment: "e"},
		{ID: "co2_e", Name: "CO2", Compartment: "e"},
		{ID: "nh4_e", Name: "Ammonium", Compartment: "e"},
		{ID: "pi_e", Name: "Phosphate", Compartment: "e"},
		{ID: "h_e", Name: "H+", Compartment: "e"},
		{ID: "h2o_e", Name: "H2O", Compartment: "e"},
		{ID: "glc_c", Name: "D-Glucose", Compartment: "c"},
		{ID: "ac_c", Name: "Acetate", Compartment: "c"},
		{ID: "o2_c", Name: "O2", Compartment: "c"},
		{ID: "co2_c", Name: "CO2", Compartment: "c"},
		{ID: "nh4_c", Name: "Ammonium", Compartment: "c"},
		{ID: "pi_c", Name: "Phosphate", Compartment: "c"},
	}

	rxns := []*Reaction{
		{ID: "EX_glc_e", Name: "Glucose exchange", LowerBound: -10, UpperBound: 1000,
			Metabolites: map[string]float64{"glc_e": -1}},
		{ID: "EX_ac_e", Name: "Acetate exchange", LowerBound: 0, UpperBound: 1000,
			Metabolites: map[string]float64{"ac_e": -1}},
		{ID: "EX_o2_e", Name: "O2 exchange", LowerBound: -1000, UpperBound: 1000,
			Metabolites: map[string]float64{"o2_e": -1}},
		{ID: "EX_co2_e", Name: "CO2 exchange", LowerBound: 0, UpperBound: 1000,
			Metabolites: map[string]float64{"co2_e": -1}},
		{ID: "EX_nh4_e", Name: "Ammonium exchange", LowerBound: -1000, UpperBound: 1000,
			Metabolites: map[string]float64{"nh4_e": -1}},
		{ID: "EX_pi_e", Name: "Phosphate exchange", LowerBound: -1000, UpperBound: 1000,
			Metabolites: map[string]float64{"pi_e": -1}},
		{ID: "EX_h_e", Name: "H+ exchange", LowerBound: -1000, UpperBound: 1000,
			Metabolites: map[string]float64{"h_e": -1}},
		{ID: "EX_h2o_e", Name: "H2O exchange", LowerBound: -1000, UpperBound: 1000,
			Metabolites: map[string]float64{"h2o_e": -1}},

		{ID: "GLCt", Name: "Glucose transport", LowerBound: 0, UpperBound: 1000,
			Metabolites: map[string]float64{"glc_e": -1, "glc_c": 1}},
		{ID: "ACt", Name: "Acetate transport", LowerBound: -1000, UpperBound: 1000,
			Metabolites: map[string]float64{"ac_c": -1, "ac_e": 1}},
		{ID: "O2t", Name: "O2 transport", LowerBound: 0, UpperBound: 1000,
			Metabolites: map[string]float64{"o2_e": -1, "o2_c": 1}},
		{ID: "CO2t", Name: "CO2 transport", LowerBound: 0, UpperBound: 1000,
			Metabolites: map[string]float64{"co2_c": -1, "co2_e": 1}},
		{ID: "NH4t", Name: "Ammonium transport", LowerBound: 0, UpperBound: 1000,
			Metabolites: map[string]float64{"nh4_e": -1, "nh4_c": 1}},
		{ID: "PIt", Name: "Phosphate transport", LowerBound: 0, UpperBound: 1000,
			Metabolites: map[string]float64{"pi_e": -1, "pi_c": 1}},

		{ID: "Biomass_Ecoli_core", Name: "Biomass objective", LowerBound: 0, UpperBound: 1000,
			Objective: 1,
			Metabolites: map[string]float64{
				"glc_c": -1, "o2_c": -2, "nh4_c": -0.2, "pi_c": -0.1,
				"co2_c": 1.8, "ac_c": 0.3,
			}},
	}

	m := &Model{
		ID:          "textbook",
		Reactions:   make(map[string]*Reaction, len(rxns)),
		Metabolites: make(map[string]*Metabolite, len(mets)),
	}
	for _, met := range mets {
		m.Metabolites[met.ID] = met
	}
	for _, r := range rxns {
		m.Reactions[r.ID] = r
	}
	return m
}
