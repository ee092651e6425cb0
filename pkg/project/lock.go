package project

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"pakt/pkg/packages"
	"pakt/pkg/transaction"
)

// Lock is the parsed pakt.lock: the resolved package set a plan is computed
// against.
type Lock struct {
	Packages []LockedPackage `toml:"package"`
}

// LockedPackage is one resolved package entry in the lockfile.
type LockedPackage struct {
	Name     string   `toml:"name"`
	Version  string   `toml:"version"`
	Optional bool     `toml:"optional,omitempty"`
	Requires []string `toml:"requires,omitempty"`

	// Priority is the ordering hint the resolver assigned. It is recorded
	// in the lock and passed through to the planner untouched.
	Priority int `toml:"priority,omitempty"`

	Source *LockedSource `toml:"source,omitempty"`
}

// LockedSource describes a non-index provenance.
type LockedSource struct {
	Type      string `toml:"type"`
	URL       string `toml:"url,omitempty"`
	Reference string `toml:"reference,omitempty"`
}

// LoadLock reads and parses a lockfile.
func LoadLock(path string) (*Lock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}

	var l Lock
	if err := toml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile %s: %w", path, err)
	}
	return &l, nil
}

// ResultPackages converts the lock entries into planner input, preserving
// lock order and priorities.
func (l *Lock) ResultPackages() ([]transaction.ResultPackage, error) {
	result := make([]transaction.ResultPackage, 0, len(l.Packages))
	for _, lp := range l.Packages {
		pkg, err := lp.toPackage()
		if err != nil {
			return nil, err
		}
		result = append(result, transaction.ResultPackage{Package: pkg, Priority: lp.Priority})
	}
	return result, nil
}

// PackageList converts the lock entries into a plain package list.
func (l *Lock) PackageList() ([]*packages.Package, error) {
	pkgs := make([]*packages.Package, 0, len(l.Packages))
	for _, lp := range l.Packages {
		pkg, err := lp.toPackage()
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

func (lp LockedPackage) toPackage() (*packages.Package, error) {
	pkg, err := packages.New(lp.Name, lp.Version)
	if err != nil {
		return nil, fmt.Errorf("invalid lock entry: %w", err)
	}
	pkg.Optional = lp.Optional
	for _, dep := range lp.Requires {
		pkg.Requires = append(pkg.Requires, packages.Normalize(dep))
	}
	if lp.Source != nil {
		pkg.SourceType = packages.SourceType(lp.Source.Type)
		pkg.SourceURL = lp.Source.URL
		pkg.SourceReference = lp.Source.Reference
	}
	return pkg, nil
}
