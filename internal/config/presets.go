package config

import "sort"

func boolPtr(b bool) *bool { return &b }

// Presets are ready-made environments for the built-in textbook
// network.
var Presets = map[string]*Config{
	"glucose_batch": {
		Model: "textbook", BiomassReaction: "Biomass_Ecoli_core",
		Dt: 0.01, Hours: 2.0, Volume: 1.0, InitialBiomass: 0.1,
		ExtConc: map[string]float64{"glc_e": 10.0},
		Vmax:    map[string]float64{"EX_glc_e": 10.0},
		Km:      map[string]float64{"EX_glc_e": 0.01},
		Yields:  map[string]float64{"EX_glc_e": 0.05},
	},
	"acetate_inhibition": {
		Model: "textbook", BiomassReaction: "Biomass_Ecoli_core",
		Dt: 0.01, Hours: 4.0, Volume: 1.0, InitialBiomass: 0.1,
		ExtConc: map[string]float64{"glc_e": 20.0, "ac_e": 0.0},
		Vmax:    map[string]float64{"EX_glc_e": 10.0},
		Km:      map[string]float64{"EX_glc_e": 0.01},
		Kn:      map[string]float64{"EX_ac_e": 5.0},
		Yields:  map[string]float64{"EX_glc_e": 0.05},
	},
	"chemostat_oxygen": {
		Model: "textbook", BiomassReaction: "Biomass_Ecoli_core",
		Dt: 0.01, Hours: 2.0, Volume: 1.0, InitialBiomass: 0.5,
		ExtConc:      map[string]float64{"glc_e": 5.0, "o2_e": 0.21},
		Setpoints:    map[string]float64{"o2_e": 0.21},
		Vmax:         map[string]float64{"EX_glc_e": 8.0, "EX_o2_e": 15.0},
		Km:           map[string]float64{"EX_glc_e": 0.02, "EX_o2_e": 0.005},
		Yields:       map[string]float64{"EX_glc_e": 0.05, "EX_o2_e": 0.01},
		ClipNegative: boolPtr(true),
	},
}

// GetPreset returns a copy of the named preset, nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
