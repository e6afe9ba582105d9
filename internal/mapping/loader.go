package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses an overrides file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a File. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse overrides YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = Version
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a File to the given path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal overrides: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write overrides file %s: %w", path, err)
	}

	return nil
}
