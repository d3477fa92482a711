// Package config handles configuration loading from YAML files
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/logstat/logging"
)

// Config holds all configuration
type Config struct {
	Log        logging.LogConfig `yaml:"log"`
	Report     ReportConfig      `yaml:"report"`
	Classifier ClassifierConfig  `yaml:"classifier"`
	Scanner    ScannerConfig     `yaml:"scanner"`
}

// ReportConfig controls how the final report is written
type ReportConfig struct {
	// Format is one of json, yaml, table, csv
	Format string `yaml:"format"`
	// Output is a file path; empty means stdout
	Output string `yaml:"output"`
}

// ClassifierConfig controls crawler detection
type ClassifierConfig struct {
	// CacheSize is the number of user-agents memoized; 0 disables the cache
	CacheSize int `yaml:"cache_size"`
}

// ScannerConfig controls line reading
type ScannerConfig struct {
	MaxLineBytes int `yaml:"max_line_bytes"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Log: *logging.DefaultLogConfig(),
		Report: ReportConfig{
			Format: "json",
		},
		Classifier: ClassifierConfig{
			CacheSize: 1024,
		},
		Scanner: ScannerConfig{
			MaxLineBytes: 1 << 20,
		},
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep their defaults.
// The result is not validated so callers can apply overrides first.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values that cannot be used
func (c *Config) Validate() error {
	switch c.Report.Format {
	case "json", "yaml", "table", "csv":
	default:
		return fmt.Errorf("invalid report format %q", c.Report.Format)
	}
	if c.Classifier.CacheSize < 0 {
		return fmt.Errorf("classifier cache_size must not be negative")
	}
	if c.Scanner.MaxLineBytes < 0 {
		return fmt.Errorf("scanner max_line_bytes must not be negative")
	}
	return nil
}
