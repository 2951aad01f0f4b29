package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/dynfba/internal/sim"
)

const (
	DefaultDt      = 0.01 // seconds
	DefaultVolume  = 1.0  // L
	DefaultBiomass = 2.0  // gDW
	DefaultSteps   = 500
)

// Config is the YAML-facing run description: which network, which
// oracle setup, the timestep, and the kinetic environment.
type Config struct {
	Model           string  `yaml:"model"`
	BiomassReaction string  `yaml:"biomass_reaction"`
	Dt              float64 `yaml:"dt"`
	Steps           int     `yaml:"steps"`
	Hours           float64 `yaml:"hours"`
	Volume          float64 `yaml:"volume"`
	InitialBiomass  float64 `yaml:"initial_biomass"`

	Vmax map[string]float64 `yaml:"vmax"`
	Km   map[string]float64 `yaml:"km"`
	Kn   map[string]float64 `yaml:"kn"`

	ExtConc            map[string]float64 `yaml:"ext_conc"`
	Setpoints          map[string]float64 `yaml:"setpoints"`
	EssentialExchanges []string           `yaml:"essential_exchanges"`
	ClipNegative       *bool              `yaml:"clip_negative"`

	// Yields configures the built-in yield oracle: exchange reaction
	// id -> gDW per mmol taken up.
	Yields map[string]float64 `yaml:"yields"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:           "textbook",
		BiomassReaction: "Biomass_Ecoli_core",
		Dt:              DefaultDt,
		Steps:           DefaultSteps,
		Volume:          DefaultVolume,
		InitialBiomass:  DefaultBiomass,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the simulator would refuse anyway,
// before any model loading happens.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %g", c.Dt)
	}
	if c.Volume <= 0 {
		return fmt.Errorf("config: volume must be positive, got %g", c.Volume)
	}
	if c.InitialBiomass <= 0 {
		return fmt.Errorf("config: initial_biomass must be positive, got %g", c.InitialBiomass)
	}
	if c.Hours <= 0 && c.Steps <= 0 {
		return fmt.Errorf("config: either steps or hours must be positive")
	}
	return nil
}

// NumSteps resolves the run length: hours wins over steps when set.
func (c *Config) NumSteps() int {
	if c.Hours > 0 {
		return int(c.Hours * sim.SecondsPerHour / c.Dt)
	}
	return c.Steps
}

// SimConfig translates the file-facing config into the engine's.
func (c *Config) SimConfig() sim.Config {
	clip := true
	if c.ClipNegative != nil {
		clip = *c.ClipNegative
	}
	return sim.Config{
		BiomassReaction: c.BiomassReaction,
		Dt:              c.Dt,
		Volume:          c.Volume,
		InitialBiomass:  c.InitialBiomass,
		Kinetics: sim.Kinetics{
			Vmax: c.Vmax,
			Km:   c.Km,
			Kn:   c.Kn,
		},
		ExtConc:            c.ExtConc,
		Setpoints:          c.Setpoints,
		EssentialExchanges: c.EssentialExchanges,
		ClipNegative:       clip,
	}
}
