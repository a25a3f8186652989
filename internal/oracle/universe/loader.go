package universe

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads a universe from a YAML file.
func LoadFile(path string) (*Universe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read universe file %s: %w", path, err)
	}

	u, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return u, nil
}

// Parse parses YAML data into a Universe.
func Parse(data []byte) (*Universe, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse universe YAML: %w", err)
	}

	return New(&f)
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.DataModel == "" {
		f.DataModel = LP64
	}
}
