// Package config handles the YAML configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the analyzer settings. Command-line flags override any value
// set here.
type Config struct {
	Region     string `yaml:"region,omitempty"`
	PeriodDays int    `yaml:"period_days,omitempty"`
	OutputDir  string `yaml:"output_dir,omitempty"`
	HistoryDir string `yaml:"history_dir,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		PeriodDays: 90,
		OutputDir:  ".",
		LogLevel:   "info",
	}
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.PeriodDays <= 0 {
		return fmt.Errorf("period_days must be positive (got %d)", c.PeriodDays)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}
