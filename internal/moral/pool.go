// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package moral chooses and safety-vets the lesson a story must convey.
package moral

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// defaultPool is the built-in set of pre-vetted morals used whenever the
// operator supplies none, or the supplied one fails safety review. Fixed
// membership and order; never mutated at run time.
var defaultPool = []string{
	"Kindness to others is important.",
	"Sharing and generosity make everyone happier.",
	"Being honest and telling the truth matters.",
	"It is okay to be afraid; courage means trying anyway.",
	"Friends help each other and work together.",
	"Taking care of the world and nature is important.",
	"Everyone makes mistakes, and we can learn from them.",
	"Being patient and not giving up helps you grow.",
	"It is important to be yourself and accept who you are.",
	"Helping others when they need it is a good thing.",
}

// DefaultPool returns a copy of the built-in safe moral pool.
func DefaultPool() []string {
	pool := make([]string, len(defaultPool))
	copy(pool, defaultPool)
	return pool
}

// poolFile is the on-disk shape of a moral pool override.
type poolFile struct {
	Morals []string `yaml:"morals"`
}

// LoadPool reads a YAML moral pool from path. The file must contain a
// non-empty `morals` list; entries are used as-is and are assumed to be
// pre-vetted the way the built-in pool is.
func LoadPool(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading moral pool: %w", err)
	}
	var f poolFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing moral pool: %w", err)
	}
	if len(f.Morals) == 0 {
		return nil, fmt.Errorf("moral pool %s has no morals", path)
	}
	return f.Morals, nil
}
