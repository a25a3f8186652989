// Package config loads the struct-layout configuration file.
//
// A configuration file names the type source and the composite to extract,
// so a layout check can be repeated with a single flag:
//
//	source: dwarf
//	inputs: [build/libnet.so]
//	struct: sockaddr_in
//	output: layouts/sockaddr_in.layout
//	baseline: layouts/sockaddr_in.layout
//	log_level: info
//
// Command-line flags override values read from the file.
package config

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Source selects the oracle composites are read from.
type Source string

const (
	SourceGo       Source = "go"       // Go packages
	SourceDWARF    Source = "dwarf"    // ELF objects with debug info
	SourceUniverse Source = "universe" // YAML composite declarations
)

// Config is the complete tool configuration.
type Config struct {
	Source   Source   `yaml:"source"`
	Inputs   []string `yaml:"inputs"`
	Struct   string   `yaml:"struct"`
	Output   string   `yaml:"output"`
	Baseline string   `yaml:"baseline,omitempty"`
	Go       GoConfig `yaml:"go"`
	LogLevel string   `yaml:"log_level"`
}

// GoConfig configures the Go source.
type GoConfig struct {
	Dir      string `yaml:"dir,omitempty"`
	Compiler string `yaml:"compiler"`
	Arch     string `yaml:"arch,omitempty"` // empty means the host's
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(cfg *Config) {
	if cfg.Source == "" {
		cfg.Source = SourceGo
	}
	if cfg.Output == "" {
		cfg.Output = "-"
	}
	if cfg.Go.Compiler == "" {
		cfg.Go.Compiler = "gc"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}

// Validate checks that cfg describes a runnable extraction.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceGo, SourceDWARF, SourceUniverse:
	default:
		return fmt.Errorf("unknown source %q (want go, dwarf or universe)", c.Source)
	}

	if c.Struct == "" {
		return fmt.Errorf("no struct to extract")
	}
	if len(c.Inputs) == 0 {
		return fmt.Errorf("no inputs for source %s", c.Source)
	}
	if c.Source != SourceGo && len(c.Inputs) > 1 {
		return fmt.Errorf("source %s takes exactly one input, got %d", c.Source, len(c.Inputs))
	}

	if c.Go.Compiler != "gc" && c.Go.Compiler != "gccgo" {
		return fmt.Errorf("unknown Go compiler %q", c.Go.Compiler)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}
