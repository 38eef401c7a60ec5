// Package config provides configuration loading and management for ucograph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete ucograph configuration
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Validation ValidationConfig `yaml:"validation"`
	Watch      WatchConfig      `yaml:"watch"`
	Log        LogConfig        `yaml:"log"`
	Metrics    MetricsConfig    `yaml:"metrics"`
}

// InputConfig configures input document discovery
type InputConfig struct {
	// Path is the input file or directory to convert
	Path string `yaml:"path"`
	// Glob selects files within an input directory (doublestar patterns)
	Glob string `yaml:"glob"`
}

// OutputConfig configures output document writing
type OutputConfig struct {
	// Dir is the output directory (created if missing)
	Dir string `yaml:"dir"`
	// Combine additionally writes one merged document for all units
	Combine bool `yaml:"combine"`
}

// ValidationConfig configures the optional external schema validator
type ValidationConfig struct {
	// Enabled runs the validator against each written document
	Enabled bool `yaml:"enabled"`
	// Command is the validator binary (default: case_validate)
	Command string `yaml:"command"`
	// Args are fixed arguments placed before the document path
	Args []string `yaml:"args"`
}

// WatchConfig configures continuous conversion of a watched input directory
type WatchConfig struct {
	// Enabled keeps the converter running and reconverts changed inputs
	Enabled bool `yaml:"enabled"`
	// DebounceDelay is how long to wait for more changes before processing
	DebounceDelay string `yaml:"debounce_delay"`
}

// GetDebounceDelay returns the debounce delay as a duration.
func (c *WatchConfig) GetDebounceDelay() time.Duration {
	if c.DebounceDelay == "" {
		return 500 * time.Millisecond
	}
	d, err := time.ParseDuration(c.DebounceDelay)
	if err != nil {
		return 500 * time.Millisecond
	}
	return d
}

// LogConfig configures logging output
type LogConfig struct {
	// Level is the slog level (debug, info, warn, error)
	Level string `yaml:"level"`
	// File duplicates log output to a file when set
	File string `yaml:"file"`
}

// MetricsConfig configures the Prometheus metrics endpoint (watch mode)
type MetricsConfig struct {
	// Addr is the listen address for /metrics (empty = disabled)
	Addr string `yaml:"addr"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Glob: "*.json",
		},
		Output: OutputConfig{
			Dir: "output",
		},
		Validation: ValidationConfig{
			Command: "case_validate",
		},
		Watch: WatchConfig{
			DebounceDelay: "500ms",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Watch.DebounceDelay != "" {
		if _, err := time.ParseDuration(c.Watch.DebounceDelay); err != nil {
			return fmt.Errorf("watch.debounce_delay is not a duration: %w", err)
		}
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn, or error")
	}
	return nil
}

// Merge overlays non-zero fields from other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Input.Path != "" {
		c.Input.Path = other.Input.Path
	}
	if other.Input.Glob != "" {
		c.Input.Glob = other.Input.Glob
	}
	if other.Output.Dir != "" {
		c.Output.Dir = other.Output.Dir
	}
	if other.Output.Combine {
		c.Output.Combine = true
	}
	if other.Validation.Enabled {
		c.Validation.Enabled = true
	}
	if other.Validation.Command != "" {
		c.Validation.Command = other.Validation.Command
	}
	if len(other.Validation.Args) > 0 {
		c.Validation.Args = other.Validation.Args
	}
	if other.Watch.Enabled {
		c.Watch.Enabled = true
	}
	if other.Watch.DebounceDelay != "" {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.File != "" {
		c.Log.File = other.Log.File
	}
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveToFile writes the configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
