// Package config defines environment configuration structs and loaders.
package config

import (
	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	AlignEnvConfig
	SummaryEnvConfig
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AlignEnvConfig configures a batch alignment run.
type AlignEnvConfig struct {
	DrawsPath       string `env:"DRAWS_PATH" envDefault:"results/draws.csv"`
	OutputDir       string `env:"OUTPUT_DIR" envDefault:"results"`
	LatentDims      int    `env:"LATENT_DIM" envDefault:"2"`
	NPersons        int    `env:"N_PERSONS"`
	NItems          int    `env:"N_ITEMS"`
	PersonPrefix    string `env:"PERSON_PREFIX" envDefault:"xi"`
	ItemPrefix      string `env:"ITEM_PREFIX" envDefault:"zt_centered"`
	ReferenceChain  int    `env:"REFERENCE_CHAIN" envDefault:"1"`
	AllowScaling    bool   `env:"ALLOW_SCALING" envDefault:"false"`
	AllowReflection bool   `env:"ALLOW_REFLECTION" envDefault:"false"`
	Workers         int    `env:"ALIGN_WORKERS" envDefault:"0"`
}

// SummaryEnvConfig configures posterior summaries over aligned draws.
type SummaryEnvConfig struct {
	AlignedPath   string  `env:"ALIGNED_PATH" envDefault:"results/draws_aligned.csv"`
	CredibleLevel float64 `env:"CREDIBLE_LEVEL" envDefault:"0.9"`
}
