// Package config parses and validates traitkit.yaml, the classifier CLI
// configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Color modes for report output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the top-level traitkit.yaml configuration.
type Config struct {
	// Packages lists the Go packages whose exported types are classified.
	Packages []Package `yaml:"packages"`

	// Report controls output formatting.
	Report Report `yaml:"report,omitempty"`
}

// Package selects Go packages by load pattern.
type Package struct {
	// Pattern is a go/packages load pattern (e.g. "./...",
	// "golang.org/x/tools/go/packages").
	Pattern string `yaml:"pattern"`

	// Dir is the working directory for the load, relative to the config
	// file. Defaults to the config file's directory.
	Dir string `yaml:"dir,omitempty"`
}

// Report holds output options.
type Report struct {
	// Color is one of auto, always, never. Defaults to auto.
	Color string `yaml:"color,omitempty"`

	// JSON emits the report as JSON instead of a table.
	JSON bool `yaml:"json,omitempty"`
}

// Load reads and parses a traitkit.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses traitkit.yaml content from bytes. Decoding is strict: an
// unknown key is an error, so a typo'd section cannot be silently ignored.
// The path argument is used only for error messages and for resolving
// relative directories.
func Parse(data []byte, path string) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults(path)
	return &cfg, nil
}

func (c *Config) validate(path string) error {
	if len(c.Packages) == 0 {
		return fmt.Errorf("%s: no packages defined", path)
	}
	for i, p := range c.Packages {
		if p.Pattern == "" {
			return fmt.Errorf("%s: packages[%d]: pattern is required", path, i)
		}
	}
	switch c.Report.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: report.color must be %s, %s or %s, got %q",
			path, ColorAuto, ColorAlways, ColorNever, c.Report.Color)
	}
	return nil
}

func (c *Config) setDefaults(path string) {
	if c.Report.Color == "" {
		c.Report.Color = ColorAuto
	}
	configDir := filepath.Dir(path)
	for i := range c.Packages {
		if c.Packages[i].Dir == "" {
			c.Packages[i].Dir = configDir
		} else if !filepath.IsAbs(c.Packages[i].Dir) {
			c.Packages[i].Dir = filepath.Join(configDir, c.Packages[i].Dir)
		}
	}
}
