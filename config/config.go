package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avelis/cladesim/bd"
	"github.com/avelis/cladesim/rates"
)

const (
	DefaultN0         = 1
	DefaultTMax       = 40.0
	DefaultSpeciation = 0.11
	DefaultExtinction = 0.08
)

// Config is a YAML-loadable simulation scenario.
type Config struct {
	N0                  int        `yaml:"n0"`
	Speciation          RateConfig `yaml:"speciation"`
	Extinction          RateConfig `yaml:"extinction"`
	TMax                float64    `yaml:"t_max"`
	SizeMin             float64    `yaml:"size_min"`
	SizeMax             float64    `yaml:"size_max"` // 0 means unbounded
	CountExtantOnly     bool       `yaml:"count_extant_only"`
	Fast                bool       `yaml:"fast"`
	TrueExtinctionTimes bool       `yaml:"true_extinction_times"`
	Seed                int64      `yaml:"seed"`
}

// RateConfig describes one hazard: either a scalar rate, or a step
// function over shift times. Shape, when nonzero, makes the rate the
// scale of a Weibull age-dependent hazard.
type RateConfig struct {
	Rate   float64   `yaml:"rate"`
	Values []float64 `yaml:"values"`
	Shifts []float64 `yaml:"shifts"`
	Shape  float64   `yaml:"shape"`
}

// Spec converts the rate description into a builder spec.
func (r RateConfig) Spec() rates.Spec {
	if len(r.Values) > 0 || len(r.Shifts) > 0 {
		return rates.Step(r.Values, r.Shifts)
	}
	return rates.Constant(r.Rate)
}

func DefaultConfig() *Config {
	return &Config{
		N0:         DefaultN0,
		Speciation: RateConfig{Rate: DefaultSpeciation},
		Extinction: RateConfig{Rate: DefaultExtinction},
		TMax:       DefaultTMax,
		Fast:       true,
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

// SizeRange returns the acceptance interval, treating SizeMax == 0 as
// unbounded.
func (c *Config) SizeRange() bd.SizeRange {
	max := c.SizeMax
	if max == 0 {
		max = math.Inf(1)
	}
	return bd.SizeRange{Min: c.SizeMin, Max: max}
}

// EngineConfig builds the engine inputs from the scenario.
func (c *Config) EngineConfig() (bd.Config, error) {
	cfg := bd.Config{
		N0:                  c.N0,
		TMax:                c.TMax,
		Size:                c.SizeRange(),
		CountExtantOnly:     c.CountExtantOnly,
		Fast:                c.Fast,
		TrueExtinctionTimes: c.TrueExtinctionTimes,
	}
	var err error
	cfg.Speciation, err = rates.Build(c.Speciation.Spec(), c.TMax, nil)
	if err != nil {
		return bd.Config{}, fmt.Errorf("speciation: %w", err)
	}
	cfg.Extinction, err = rates.Build(c.Extinction.Spec(), c.TMax, nil)
	if err != nil {
		return bd.Config{}, fmt.Errorf("extinction: %w", err)
	}
	if c.Speciation.Shape != 0 {
		cfg.SpeciationShape = bd.ConstShape(c.Speciation.Shape)
	}
	if c.Extinction.Shape != 0 {
		cfg.ExtinctionShape = bd.ConstShape(c.Extinction.Shape)
	}
	return cfg, nil
}
