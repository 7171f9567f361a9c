// Package config holds the analysis configuration: model constants,
// pruning coverage, and the knobs of the stress and suggestion passes.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/love-os/teamgrav/internal/gravity"
)

const (
	DefaultCoverage   = 0.90
	DefaultIterations = 5000
	DefaultNoiseScale = 0.1
	DefaultBudget     = 1.0
	DefaultStep       = 0.1
)

type Config struct {
	Kappa    float64 `yaml:"kappa"`
	Epsilon  float64 `yaml:"epsilon"`
	Coverage float64 `yaml:"coverage"`

	Stress  StressConfig  `yaml:"stress"`
	Suggest SuggestConfig `yaml:"suggest"`
}

type StressConfig struct {
	Iterations int     `yaml:"iterations"`
	NoiseScale float64 `yaml:"noise_scale"`
	Seed       int64   `yaml:"seed"`
}

type SuggestConfig struct {
	Budget float64 `yaml:"budget"`
	Step   float64 `yaml:"step"`
}

func DefaultConfig() *Config {
	return &Config{
		Kappa:    gravity.DefaultKappa,
		Epsilon:  gravity.DefaultEpsilon,
		Coverage: DefaultCoverage,
		Stress: StressConfig{
			Iterations: DefaultIterations,
			NoiseScale: DefaultNoiseScale,
		},
		Suggest: SuggestConfig{
			Budget: DefaultBudget,
			Step:   DefaultStep,
		},
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

// Params extracts the scorer constants.
func (c *Config) Params() gravity.Params {
	return gravity.Params{Kappa: c.Kappa, Epsilon: c.Epsilon}
}
