// Package packages defines the package record model shared by the planner,
// the stores and the executor: identity, version and provenance of a single
// package in a resolved set or an environment snapshot.
package packages

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
)

// NormalizedName is a package name after normalization. Names inside any one
// package set are unique under normalization; that uniqueness is a caller
// obligation, not re-validated here.
type NormalizedName string

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// Normalize canonicalizes a package name: lowercase, with runs of
// hyphens, underscores and dots collapsed to a single hyphen.
func Normalize(name string) NormalizedName {
	return NormalizedName(nameSeparators.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-"))
}

// SourceType identifies where a package comes from. The zero value means the
// source is absent, which is how packages installed from a legacy index
// surface once installed.
type SourceType string

const (
	SourceNone        SourceType = ""
	SourceIndex       SourceType = "index"
	SourceLegacyIndex SourceType = "legacy-index"
	SourceDirectory   SourceType = "directory"
	SourceGit         SourceType = "git"
	SourceURL         SourceType = "url"
	SourceFile        SourceType = "file"
)

// Package describes one package: its normalized name, version and provenance.
// Values are treated as immutable once constructed; the planner never mutates
// its inputs.
type Package struct {
	Name    NormalizedName  `json:"name"`
	Version *semver.Version `json:"version"`

	SourceType      SourceType `json:"source_type,omitempty"`
	SourceURL       string     `json:"source_url,omitempty"`
	SourceReference string     `json:"source_reference,omitempty"`

	// Optional marks a package that is only wanted when some extra
	// solicits it.
	Optional bool `json:"optional,omitempty"`

	// Requires lists the normalized names this package depends on, as
	// reported by the resolver. Used for the extras closure walk.
	Requires []NormalizedName `json:"requires,omitempty"`

	// Extras maps an extra name to the dependency names it pulls in.
	// Only meaningful on a root package.
	Extras map[NormalizedName][]NormalizedName `json:"extras,omitempty"`
}

// New builds a package from a raw name and version string.
func New(name, version string) (*Package, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q for package %q: %w", version, name, err)
	}
	return &Package{Name: Normalize(name), Version: v}, nil
}

// IsSamePackageAs reports structural equivalence: same identity-relevant
// attributes (name and source descriptors) regardless of version.
func (p *Package) IsSamePackageAs(other *Package) bool {
	if other == nil {
		return false
	}
	return p.Name == other.Name &&
		p.SourceType == other.SourceType &&
		p.SourceURL == other.SourceURL &&
		p.SourceReference == other.SourceReference
}

// String renders the package as "name (version)" for reporting.
func (p *Package) String() string {
	if p.Version == nil {
		return string(p.Name)
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Version)
}

// FullName renders the package as "name==version".
func (p *Package) FullName() string {
	if p.Version == nil {
		return string(p.Name)
	}
	return fmt.Sprintf("%s==%s", p.Name, p.Version)
}
