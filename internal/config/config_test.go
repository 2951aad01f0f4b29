package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")

	yaml := `
model: textbook
dt: 0.5
steps: 100
volume: 2.0
initial_biomass: 0.25
ext_conc:
  glc_e: 10.0
setpoints:
  o2_e: 0.21
vmax:
  EX_glc_e: 8.0
kn:
  EX_ac_e: 5.0
clip_negative: false
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Dt != 0.5 {
		t.Errorf("dt = %g, want 0.5", cfg.Dt)
	}
	if cfg.Steps != 100 {
		t.Errorf("steps = %d, want 100", cfg.Steps)
	}
	if cfg.ExtConc["glc_e"] != 10.0 {
		t.Errorf("ext_conc[glc_e] = %g", cfg.ExtConc["glc_e"])
	}
	if cfg.Setpoints["o2_e"] != 0.21 {
		t.Errorf("setpoints[o2_e] = %g", cfg.Setpoints["o2_e"])
	}
	// Unset fields keep defaults.
	if cfg.BiomassReaction != "Biomass_Ecoli_core" {
		t.Errorf("biomass_reaction = %q", cfg.BiomassReaction)
	}
	if cfg.ClipNegative == nil || *cfg.ClipNegative {
		t.Error("clip_negative should be explicitly false")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yaml")

	cfg := DefaultConfig()
	cfg.ExtConc = map[string]float64{"glc_e": 7.5}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ExtConc["glc_e"] != 7.5 {
		t.Errorf("round trip lost ext_conc: %v", loaded.ExtConc)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"zero dt", func(c *Config) { c.Dt = 0 }, true},
		{"negative volume", func(c *Config) { c.Volume = -1 }, true},
		{"zero biomass", func(c *Config) { c.InitialBiomass = 0 }, true},
		{"no steps no hours", func(c *Config) { c.Steps = 0 }, true},
		{"hours only", func(c *Config) { c.Steps = 0; c.Hours = 1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNumStepsHoursWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.01
	cfg.Steps = 42
	cfg.Hours = 2.0

	// 2 h * 3600 s/h / 0.01 s
	if got := cfg.NumSteps(); got != 720000 {
		t.Errorf("NumSteps = %d, want 720000", got)
	}

	cfg.Hours = 0
	if got := cfg.NumSteps(); got != 42 {
		t.Errorf("NumSteps = %d, want 42", got)
	}
}

func TestSimConfigTranslation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kn = map[string]float64{"EX_ac_e": 5}
	cfg.Setpoints = map[string]float64{"o2_e": 0.21}

	sc := cfg.SimConfig()
	if sc.Kinetics.Kn["EX_ac_e"] != 5 {
		t.Error("kn not translated")
	}
	if sc.Setpoints["o2_e"] != 0.21 {
		t.Error("setpoints not translated")
	}
	if !sc.ClipNegative {
		t.Error("clip_negative defaults to true")
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("no presets")
	}
	for _, name := range names {
		p := GetPreset(name)
		if p == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := p.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
	if GetPreset("nope") != nil {
		t.Error("unknown preset returned non-nil")
	}
}
