// Package config loads checkfmt configuration from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/harrison/checkfmt/internal/pipeline"
)

// DefaultConfigFile is the config file looked up relative to the working
// directory when no --config flag is given.
const DefaultConfigFile = ".checkfmt.yaml"

// Config represents checkfmt configuration options
type Config struct {
	// Formatter is the formatter binary invoked for each file
	Formatter string `yaml:"formatter"`

	// Style is the formatter style argument, passed as -style=<value>
	Style string `yaml:"style"`

	// Directive is the directive token shielded from the formatter
	Directive string `yaml:"directive"`

	// MaskedDirective is the commented-out form the directive is masked as.
	// Empty means "//" + Directive.
	MaskedDirective string `yaml:"masked_directive"`

	// SkipBlankLines skips empty or whitespace-only input lines instead of
	// treating them as file paths
	SkipBlankLines bool `yaml:"skip_blank_lines"`

	// LogLevel sets the diagnostic verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables per-run file logging into the given directory when set
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Formatter:      pipeline.DefaultFormatter,
		Style:          pipeline.DefaultStyle,
		Directive:      pipeline.DefaultDirective,
		SkipBlankLines: true,
		LogLevel:       "info",
		LogDir:         "",
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields distinguish "absent" from zero values, so an explicit
	// skip_blank_lines: false survives the defaults merge.
	type yamlConfig struct {
		Formatter       *string `yaml:"formatter"`
		Style           *string `yaml:"style"`
		Directive       *string `yaml:"directive"`
		MaskedDirective *string `yaml:"masked_directive"`
		SkipBlankLines  *bool   `yaml:"skip_blank_lines"`
		LogLevel        *string `yaml:"log_level"`
		LogDir          *string `yaml:"log_dir"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Formatter != nil {
		cfg.Formatter = *yamlCfg.Formatter
	}
	if yamlCfg.Style != nil {
		cfg.Style = *yamlCfg.Style
	}
	if yamlCfg.Directive != nil {
		cfg.Directive = *yamlCfg.Directive
	}
	if yamlCfg.MaskedDirective != nil {
		cfg.MaskedDirective = *yamlCfg.MaskedDirective
	}
	if yamlCfg.SkipBlankLines != nil {
		cfg.SkipBlankLines = *yamlCfg.SkipBlankLines
	}
	if yamlCfg.LogLevel != nil {
		cfg.LogLevel = *yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != nil {
		cfg.LogDir = *yamlCfg.LogDir
	}

	return cfg, nil
}
