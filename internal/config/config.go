// Package config loads optional defaults for the CLI from a yaml file.
// Flags always win over file values.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is looked up in the working directory when no --config flag
// is given.
const DefaultPath = ".mdrun.yaml"

// Config holds CLI defaults.
type Config struct {
	// Python overrides the python interpreter binary.
	Python string `yaml:"python"`

	// MatchIndent re-indents written output to match the target block.
	MatchIndent bool `yaml:"match_indent"`

	// Lang restricts which executable blocks run, as a glob pattern.
	Lang string `yaml:"lang"`
}

// Load reads the config at path. A missing file at the default path is not
// an error; an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return &Config{}, nil
	}

	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}
