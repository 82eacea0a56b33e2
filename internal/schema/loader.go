package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SupportedVersion is the only schema version understood by the loader.
const SupportedVersion = "1"

// LoadFile loads, parses and resolves a YAML schema file.
func LoadFile(path string) ([]*Declaration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data, path)
}

// Parse parses YAML data and resolves every declaration. filename is only
// used for diagnostic positions.
func Parse(data []byte, filename string) ([]*Declaration, error) {
	f, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return Resolve(f, filename), nil
}

// Decode parses YAML data into a File without resolving it.
func Decode(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if err := applyDefaults(&f); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional keys.
func applyDefaults(f *File) error {
	if f.Version == "" {
		f.Version = SupportedVersion
	}

	if f.Version != SupportedVersion {
		return fmt.Errorf("unsupported schema version %q (want %q)", f.Version, SupportedVersion)
	}

	return nil
}

