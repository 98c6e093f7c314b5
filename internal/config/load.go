package config

import (
	"os"
	"strconv"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiWithDefault(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func boolWithDefault(s string, def bool) bool {
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func LoadAlignEnv() (*AlignEnvConfig, error) {
	cfg := &AlignEnvConfig{
		DrawsPath:       getenv("DRAWS_PATH", "results/draws.csv"),
		OutputDir:       getenv("OUTPUT_DIR", "results"),
		LatentDims:      atoiWithDefault(getenv("LATENT_DIM", "2"), 2),
		NPersons:        atoiWithDefault(getenv("N_PERSONS", ""), 0),
		NItems:          atoiWithDefault(getenv("N_ITEMS", ""), 0),
		PersonPrefix:    getenv("PERSON_PREFIX", "xi"),
		ItemPrefix:      getenv("ITEM_PREFIX", "zt_centered"),
		ReferenceChain:  atoiWithDefault(getenv("REFERENCE_CHAIN", "1"), 1),
		AllowScaling:    boolWithDefault(getenv("ALLOW_SCALING", ""), false),
		AllowReflection: boolWithDefault(getenv("ALLOW_REFLECTION", ""), false),
		Workers:         atoiWithDefault(getenv("ALIGN_WORKERS", "0"), 0),
	}
	return cfg, nil
}
