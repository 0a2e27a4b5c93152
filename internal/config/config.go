package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at the data directory root.
const FileName = "settled.yaml"

// Config represents the top-level settled.yaml configuration.
type Config struct {
	Account  AccountConfig  `yaml:"account"`
	Locale   LocaleConfig   `yaml:"locale"`
	Matching MatchingConfig `yaml:"matching"`
	Git      GitConfig      `yaml:"git"`
}

// AccountConfig describes the default account statements belong to.
type AccountConfig struct {
	Label string `yaml:"label"`
}

// LocaleConfig controls parsing conventions for ambiguous input.
type LocaleConfig struct {
	// DateOrder is "mdy" (US) or "dmy" (UK/EU) and decides how
	// ambiguous slash dates like 03/04/2025 are read.
	DateOrder string `yaml:"date_order"`
}

// DayFirst reports whether ambiguous dates read day before month.
func (l LocaleConfig) DayFirst() bool {
	return l.DateOrder == "dmy"
}

// MatchingConfig controls the auto-match policy.
type MatchingConfig struct {
	// MinConfidence is the auto-match commit floor, 0-100.
	MinConfidence int `yaml:"min_confidence"`
	// MaxSuggestions caps the interactive suggestion list.
	MaxSuggestions int `yaml:"max_suggestions"`
}

// GitConfig controls git integration for the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a settled.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data
// directory.
func Default(accountLabel string) *Config {
	return &Config{
		Account: AccountConfig{
			Label: accountLabel,
		},
		Locale: LocaleConfig{
			DateOrder: "mdy",
		},
		Matching: MatchingConfig{
			MinConfidence:  70,
			MaxSuggestions: 5,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Settled",
			AuthorEmail: "bot@settled.dev",
		},
	}
}
