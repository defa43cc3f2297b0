// Package config holds the settings of the svgplot command and loads them
// from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vasalvit/svgplot/plot"
	"github.com/vasalvit/svgplot/svg"
)

// ErrInvalid is returned for settings that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Environment variables read by ApplyEnv.
const (
	EnvPenUpHeight   = "PEN_UP_HEIGHT"
	EnvPenDownHeight = "PEN_DOWN_HEIGHT"
	EnvMaxLineSpeed  = "MAX_LINE_SPEED"
	EnvOutputDir     = "SVGPLOT_OUTPUT_DIR"
)

// Config is the complete svgplot configuration.
type Config struct {
	PenUpHeight   float64 `yaml:"pen_up_height"`
	PenDownHeight float64 `yaml:"pen_down_height"`
	MaxLineSpeed  float64 `yaml:"max_line_speed"`

	// OutputDir receives the generated files. Empty means next to each
	// input file.
	OutputDir string `yaml:"output_dir"`

	Preview      bool `yaml:"preview"`
	PreviewWidth int  `yaml:"preview_width"`

	// ErrorMode is one of ignore, warn or strict.
	ErrorMode string `yaml:"error_mode"`
}

// Default returns the default configuration.
func Default() *Config {
	p := plot.DefaultParams()
	return &Config{
		PenUpHeight:   p.PenUpHeight,
		PenDownHeight: p.PenDownHeight,
		MaxLineSpeed:  p.MaxLineSpeed,
		PreviewWidth:  800,
		ErrorMode:     svg.WarnErrorMode.String(),
	}
}

// Load reads a configuration file. Settings missing from the file keep
// their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads the configuration from path, or returns the defaults
// if path is empty or does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables. lookup is
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := []struct {
		name string
		dst  *float64
	}{
		{EnvPenUpHeight, &c.PenUpHeight},
		{EnvPenDownHeight, &c.PenDownHeight},
		{EnvMaxLineSpeed, &c.MaxLineSpeed},
	}
	for _, f := range floats {
		v, ok := lookup(f.name)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, f.name, v)
		}
		*f.dst = n
	}
	if v, ok := lookup(EnvOutputDir); ok && v != "" {
		c.OutputDir = v
	}
	return nil
}

// Validate checks that the configuration can be used.
func (c *Config) Validate() error {
	if c.MaxLineSpeed <= 0 {
		return fmt.Errorf("%w: max_line_speed must be positive, got %g", ErrInvalid, c.MaxLineSpeed)
	}
	if c.Preview && c.PreviewWidth <= 0 {
		return fmt.Errorf("%w: preview_width must be positive, got %d", ErrInvalid, c.PreviewWidth)
	}
	if _, err := svg.ParseErrorMode(c.ErrorMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Params returns the machine settings for plot.Convert.
func (c *Config) Params() plot.Params {
	return plot.Params{
		PenUpHeight:   c.PenUpHeight,
		PenDownHeight: c.PenDownHeight,
		MaxLineSpeed:  c.MaxLineSpeed,
	}
}

// Mode returns the parser error mode. Call Validate first.
func (c *Config) Mode() svg.ErrorMode {
	m, _ := svg.ParseErrorMode(c.ErrorMode)
	return m
}

// InitConfig writes the default configuration to path unless a file is
// already there.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	return Default().Save(path)
}
