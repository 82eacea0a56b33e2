// Package config holds the generator settings and loads them from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"companion-generator/internal/analyze"
)

// Config holds every setting that influences generation.
type Config struct {
	// OutputDir is the directory where generated files are written.
	OutputDir string `yaml:"output_dir"`
	// DebugTrait is the bound added by inference.
	DebugTrait string `yaml:"debug_trait"`
	// PhantomMarkers are the zero-sized marker types whose fields never print
	// and never demand a bound.
	PhantomMarkers []string `yaml:"phantom_markers"`
	// OptionWrappers are unwrapped once to find an optional field's inner type.
	OptionWrappers []string `yaml:"option_wrappers"`
	// SequenceTypes are the single-argument collections accepted by `each`.
	SequenceTypes []string `yaml:"sequence_types"`
	// EmbedDiagnostics renders error diagnostics as compile_error! items.
	EmbedDiagnostics bool `yaml:"embed_diagnostics"`
	// StrictEach reports `each` on a non-sequence field as a warning instead
	// of ignoring it silently.
	StrictEach bool `yaml:"strict_each"`
	// Jobs bounds concurrent declaration synthesis; 0 means GOMAXPROCS.
	Jobs int `yaml:"jobs"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		OutputDir:  "./generated",
		DebugTrait: "::std::fmt::Debug",
		PhantomMarkers: []string{
			"PhantomData",
			"std::marker::PhantomData",
			"core::marker::PhantomData",
		},
		OptionWrappers: []string{
			"Option",
			"std::option::Option",
			"core::option::Option",
		},
		SequenceTypes: []string{
			"Vec",
			"std::vec::Vec",
			"alloc::vec::Vec",
		},
		EmbedDiagnostics: true,
	}
}

// Load reads a YAML configuration file on top of the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration on top of the defaults and validates it.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	var errs []error

	if c.Jobs < 0 {
		errs = append(errs, fmt.Errorf("jobs must not be negative, got %d", c.Jobs))
	}

	if _, err := c.DebugBound(); err != nil {
		errs = append(errs, err)
	}

	for _, setting := range []struct {
		name string
		list []string
	}{
		{"phantom_markers", c.PhantomMarkers},
		{"option_wrappers", c.OptionWrappers},
		{"sequence_types", c.SequenceTypes},
	} {
		name, list := setting.name, setting.list
		if len(list) == 0 {
			errs = append(errs, fmt.Errorf("%s must not be empty", name))
		}

		for _, p := range list {
			t, err := analyze.ParseType(p)
			if err != nil || !t.IsPath() || len(t.Last().Args) > 0 {
				errs = append(errs, fmt.Errorf("%s: %q is not a plain type path", name, p))
			}
		}
	}

	return errors.Join(errs...)
}

// DebugBound parses DebugTrait into a bound.
func (c Config) DebugBound() (*analyze.Type, error) {
	bounds, err := analyze.ParseBounds(c.DebugTrait)
	if err != nil {
		return nil, fmt.Errorf("debug_trait %q: %w", c.DebugTrait, err)
	}

	if len(bounds) != 1 || bounds[0].Kind != analyze.TypeKindPath || bounds[0].Relaxed {
		return nil, fmt.Errorf("debug_trait %q must be a single trait path", c.DebugTrait)
	}

	return bounds[0], nil
}
