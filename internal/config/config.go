package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 0.001
	DefaultDuration   = 5.0
	DefaultIntegrator = "rk4"
	DefaultProjectTol = 1e-10
)

// Config describes a simulation run: which scenario to build, how to
// integrate it, and how to keep its constraints assembled.
type Config struct {
	Scenario     string  `yaml:"scenario"`
	Integrator   string  `yaml:"integrator"`
	Dt           float64 `yaml:"dt"`
	Duration     float64 `yaml:"duration"`
	ProjectTol   float64 `yaml:"project_tol"`
	ProjectEvery int     `yaml:"project_every"`
	// ReactionBody selects the mobilized body whose reaction force is
	// tracked and plotted; 0 disables tracking.
	ReactionBody int `yaml:"reaction_body"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "pendulum",
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		ProjectTol: DefaultProjectTol,
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
