// Package config provides configuration management, mirroring the
// teacher's internal/config: JSON-backed, with Default/Load/Save and a
// process-global Get/Set.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"factgraph/internal/errors"
	"factgraph/internal/logging"
)

// Config is the main application configuration.
type Config struct {
	// Version is the configuration version.
	Version string `json:"version"`

	// Logging contains logging configuration.
	Logging logging.Config `json:"logging"`

	// Evaluation contains evaluator behavior settings.
	Evaluation EvaluationConfig `json:"evaluation"`
}

// EvaluationConfig controls graph-build and evaluation behavior.
type EvaluationConfig struct {
	// StrictMode controls whether a MissingDependencyReference panics
	// immediately during graph.Build, or is returned to the caller
	// as a Go error.
	StrictMode bool `json:"strict_mode"`

	// DefaultEntityCountHint is used only by the CLI test-harness fixture
	// loader, to pre-size per-entity slices when synthesizing a fixture
	// from a partial input record.
	DefaultEntityCountHint int `json:"default_entity_count_hint"`
}

// Default returns a default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0",
		Logging: logging.DefaultConfig(),
		Evaluation: EvaluationConfig{
			StrictMode:             true,
			DefaultEntityCountHint: 4,
		},
	}
}

// Load loads configuration from a file, falling back to Default if the
// file does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errors.Config("failed to read configuration file", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Config("failed to parse configuration file", err)
	}

	return cfg, nil
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Config("failed to create configuration directory", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Config("failed to marshal configuration", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Config("failed to write configuration file", err)
	}
	return nil
}

// Global configuration instance.
var globalConfig = Default()

// Get returns the global configuration.
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration.
func Set(cfg *Config) {
	globalConfig = cfg
}
