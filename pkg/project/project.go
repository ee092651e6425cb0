// Package project loads the pakt.toml manifest and the pakt.lock lockfile.
// The manifest describes the root package and its extras; the lockfile holds
// a resolved package set written by a resolver, including the ordering
// priorities the planner sorts by.
package project

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"pakt/pkg/packages"
)

const (
	// ManifestFile is the default manifest filename.
	ManifestFile = "pakt.toml"
	// LockFile is the default lockfile filename.
	LockFile = "pakt.lock"
)

// Manifest is the parsed pakt.toml.
type Manifest struct {
	Project ProjectSection `toml:"project"`
}

// ProjectSection describes the root package.
type ProjectSection struct {
	Name    string              `toml:"name"`
	Version string              `toml:"version"`
	Extras  map[string][]string `toml:"extras"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	if m.Project.Name == "" {
		return nil, fmt.Errorf("manifest %s has no project name", path)
	}
	return &m, nil
}

// RootPackage builds the root package from the manifest, with extra names
// and their dependency lists normalized.
func (m *Manifest) RootPackage() (*packages.Package, error) {
	root, err := packages.New(m.Project.Name, m.Project.Version)
	if err != nil {
		return nil, err
	}

	if len(m.Project.Extras) > 0 {
		root.Extras = make(map[packages.NormalizedName][]packages.NormalizedName, len(m.Project.Extras))
		for extra, deps := range m.Project.Extras {
			names := make([]packages.NormalizedName, len(deps))
			for i, dep := range deps {
				names[i] = packages.Normalize(dep)
			}
			root.Extras[packages.Normalize(extra)] = names
		}
	}
	return root, nil
}
