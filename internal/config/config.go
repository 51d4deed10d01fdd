// Package config loads the CLI's budget/policy configuration (spec §10.3).
// The core package never reads this file itself; cmd/llmcost loads it and
// passes plain Go values into pkg/tokenizer and pkg/pricing.
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Budget is the optional spend/quota guardrail a CLI caller may enforce;
// the core has no notion of a budget.
type Budget struct {
	MaxUSD    float64 `toml:"max_usd"`
	MaxTokens int64   `toml:"max_tokens"`
}

// Config is the parsed contents of the TOML configuration file.
type Config struct {
	CacheDir     string `toml:"cache_dir"`
	ForceStale   bool   `toml:"force_stale"`
	DefaultModel string `toml:"default_model"`
	Budget       Budget `toml:"budget"`
}

// Load parses path as TOML. A missing file is not an error: it returns
// the zero Config so the CLI falls back to its flag defaults.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
