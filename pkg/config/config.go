// Package config defines the agrierp configuration and how it is loaded.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log formatter: text or json.
	LogFormat string `koanf:"log_format"`

	// DataDir is a scenario directory holding equipment.csv, plans.csv and
	// optionally readings.csv. Explicit file paths take precedence.
	DataDir string `koanf:"data_dir"`

	EquipmentFile string `koanf:"equipment_file"`
	PlansFile     string `koanf:"plans_file"`
	ReadingsFile  string `koanf:"readings_file"`

	// OutputFormat is one of text, json, csv.
	OutputFormat string `koanf:"output_format"`
	OutputDir    string `koanf:"output_dir"`

	// EvaluationWorkers bounds concurrent per-equipment evaluation.
	EvaluationWorkers int `koanf:"evaluation_workers"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		OutputFormat:      "text",
		EvaluationWorkers: runtime.NumCPU(),
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	switch c.OutputFormat {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("%w: output_format must be text, json or csv, got %q", ErrInvalidConfig, c.OutputFormat)
	}
	if c.OutputFormat == "csv" && c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir is required for csv output", ErrInvalidConfig)
	}
	if c.EvaluationWorkers < 1 {
		return fmt.Errorf("%w: evaluation_workers must be positive, got %d", ErrInvalidConfig, c.EvaluationWorkers)
	}
	return nil
}

// ResolveFiles fills empty file paths from DataDir and checks the required ones.
func (c *Config) ResolveFiles() error {
	if c.DataDir != "" {
		if c.EquipmentFile == "" {
			c.EquipmentFile = filepath.Join(c.DataDir, "equipment.csv")
		}
		if c.PlansFile == "" {
			c.PlansFile = filepath.Join(c.DataDir, "plans.csv")
		}
	}
	if c.EquipmentFile == "" || c.PlansFile == "" {
		return fmt.Errorf("%w: either data_dir or both equipment_file and plans_file are required", ErrInvalidConfig)
	}
	return nil
}
