// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	Blocks        string `json:"blocks,omitempty"`         // Path to content blocks JSON file
	ModelResponse string `json:"model_response,omitempty"` // Path to raw model response file
	Output        string `json:"output,omitempty"`         // Path to output profile JSON file

	// Extraction
	Workers             int    `json:"workers,omitempty"`               // Worker count for block sharding
	Language            string `json:"language,omitempty"`              // Language hint for the recognizer
	RecognizerTimeoutMS int    `json:"recognizer_timeout_ms,omitempty"` // Timeout per recognizer call

	// Behavior
	ValidateSchema bool `json:"validate_schema,omitempty"` // Validate output against the profile schema
	Pretty         bool `json:"pretty,omitempty"`          // Indent output JSON
	Verbose        bool `json:"verbose,omitempty"`         // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	if c.RecognizerTimeoutMS < 0 {
		return fmt.Errorf("config error: 'recognizer_timeout_ms' must be non-negative")
	}
	if c.Blocks != "" {
		if _, err := os.Stat(c.Blocks); os.IsNotExist(err) {
			return fmt.Errorf("config error: blocks file not found: %s", c.Blocks)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Blocks == "" {
		result.Blocks = defaults.Blocks
	}
	if result.ModelResponse == "" {
		result.ModelResponse = defaults.ModelResponse
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.RecognizerTimeoutMS == 0 {
		result.RecognizerTimeoutMS = defaults.RecognizerTimeoutMS
	}
	if !result.ValidateSchema {
		result.ValidateSchema = defaults.ValidateSchema
	}
	if !result.Pretty {
		result.Pretty = defaults.Pretty
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	return result
}
