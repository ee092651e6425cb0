// Package transaction plans the minimal ordered set of operations needed to
// bring an environment's installed package set in line with a resolved one.
// Planning is a pure computation: it reads the package sets, emits a fresh
// operation list and never touches its inputs, so a Transaction is safe to
// share between goroutines.
package transaction

import (
	"errors"
	"sort"

	"pakt/pkg/extras"
	"pakt/pkg/operations"
	"pakt/pkg/packages"
)

// bootstrapPackage is preserved during synchronization when it is not itself
// part of the resolved set, so externally managed environments do not lose
// their installer.
const bootstrapPackage = packages.NormalizedName("pip")

// ErrExtrasWithoutRoot is returned when extras are requested but no root
// package was supplied to resolve them against. This is a caller contract
// violation; planning never proceeds with a silently empty extras closure.
var ErrExtrasWithoutRoot = errors.New("transaction: extras requested without a root package")

// ResultPackage is one entry of the newly-resolved set: the package plus the
// ordering priority the resolver assigned to it. The priority is opaque to
// the planner; larger values sort earlier in the plan.
type ResultPackage struct {
	Package  *packages.Package
	Priority int
}

// Transaction holds the three package sets a plan is computed from and the
// optional root package.
type Transaction struct {
	current   []*packages.Package
	result    []ResultPackage
	installed []*packages.Package
	root      *packages.Package
}

// New creates a transaction over the previously-resolved set, the
// newly-resolved set and a snapshot of what is installed. root may be nil
// unless extras are requested at planning time. Inputs must be name-unique
// within each set; on duplicates the first entry wins.
func New(current []*packages.Package, result []ResultPackage, installed []*packages.Package, root *packages.Package) *Transaction {
	return &Transaction{
		current:   current,
		result:    result,
		installed: installed,
		root:      root,
	}
}

// Options control how operations are calculated.
type Options struct {
	// WithUninstalls removes packages that dropped out of the previous
	// resolution.
	WithUninstalls bool

	// Synchronize additionally removes any installed package absent from
	// the resolved set, except protected ones.
	Synchronize bool

	// SkipDirectory suppresses installs of directory-sourced packages
	// that are not yet installed.
	SkipDirectory bool

	// Extras is the set of requested extra names, or nil when extras were
	// not given. With a non-nil set, optional packages outside the extras
	// closure are uninstalled (or reported as not required).
	Extras map[packages.NormalizedName]struct{}
}

// DefaultOptions returns the planner defaults: uninstalls on, everything
// else off.
func DefaultOptions() Options {
	return Options{WithUninstalls: true}
}

// CalculateOperations diffs the resolved set against the installed snapshot
// and returns the ordered operation list. Operations marked skipped are
// reported no-ops the executor must surface but not perform.
func (t *Transaction) CalculateOperations(opts Options) ([]operations.Operation, error) {
	var extraPackages map[packages.NormalizedName]struct{}
	if opts.Extras != nil {
		if t.root == nil {
			return nil, ErrExtrasWithoutRoot
		}
		extraPackages = extras.GetExtraPackageNames(t.resultList(), t.root.Extras, opts.Extras)
	}

	// First entry wins on duplicate names; name-uniqueness is a caller
	// obligation.
	installedByName := make(map[packages.NormalizedName]*packages.Package, len(t.installed))
	for _, p := range t.installed {
		if _, ok := installedByName[p.Name]; !ok {
			installedByName[p.Name] = p
		}
	}

	var ops []operations.Operation

	// Names already scheduled for removal, threaded through the sweep and
	// synchronize phases so nothing is uninstalled twice.
	uninstalls := make(map[packages.NormalizedName]struct{})

	for _, entry := range t.result {
		pkg := entry.Package

		isUnsolicitedExtra := opts.Extras != nil && pkg.Optional && !member(extraPackages, pkg.Name)

		if installed, ok := installedByName[pkg.Name]; ok {
			switch {
			case isUnsolicitedExtra:
				// Extras that were not requested are always
				// uninstalled.
				uninstalls[installed.Name] = struct{}{}
				ops = append(ops, operations.NewUninstall(installed))

			case needsUpdate(pkg, installed):
				ops = append(ops, operations.NewUpdate(installed, pkg, entry.Priority))

			default:
				ops = append(ops, operations.NewInstall(pkg, 0).Skip("Already installed"))
			}
			continue
		}

		if opts.SkipDirectory && pkg.SourceType == packages.SourceDirectory {
			continue
		}

		op := operations.NewInstall(pkg, entry.Priority)
		if isUnsolicitedExtra {
			op.Skip("Not required")
		}
		ops = append(ops, op)
	}

	if opts.WithUninstalls {
		resultNames := t.resultNames()

		for _, currentPkg := range t.current {
			if member(resultNames, currentPkg.Name) {
				continue
			}
			if installed, ok := installedByName[currentPkg.Name]; ok {
				uninstalls[installed.Name] = struct{}{}
				ops = append(ops, operations.NewUninstall(installed))
			}
		}

		if opts.Synchronize {
			// The bootstrap installer is preserved when not managed
			// here, to keep externally managed environments intact.
			preserved := make(map[packages.NormalizedName]struct{})
			if !member(resultNames, bootstrapPackage) {
				preserved[bootstrapPackage] = struct{}{}
			}

			for _, installed := range t.installed {
				if member(uninstalls, installed.Name) {
					continue
				}
				if t.root != nil && installed.Name == t.root.Name {
					continue
				}
				if member(preserved, installed.Name) {
					continue
				}
				if !member(resultNames, installed.Name) {
					uninstalls[installed.Name] = struct{}{}
					ops = append(ops, operations.NewUninstall(installed))
				}
			}
		}
	}

	sortOperations(ops)
	return ops, nil
}

// needsUpdate reports whether the installed package must be replaced by the
// resolved one: the version changed, or another identity attribute (source
// type, url, reference) did. Installed packages never carry the legacy-index
// source type; a package installed from a legacy index surfaces with no
// source type at all. So when the installed package has no source type and
// the resolved one is legacy-index, the source difference alone is not a
// reason to update. A side effect is that switching between an index and a
// legacy index never triggers an update by itself.
func needsUpdate(result, installed *packages.Package) bool {
	if compareVersions(result, installed) != 0 {
		return true
	}
	if installed.SourceType == packages.SourceNone && result.SourceType == packages.SourceLegacyIndex {
		return false
	}
	return !result.IsSamePackageAs(installed)
}

// sortOperations orders the plan deterministically: priority descending,
// then package name ascending, then version ascending. An update sorts by
// its destination package.
func sortOperations(ops []operations.Operation) {
	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Priority() != ops[j].Priority() {
			return ops[i].Priority() > ops[j].Priority()
		}
		pi, pj := ops[i].Package(), ops[j].Package()
		if pi.Name != pj.Name {
			return pi.Name < pj.Name
		}
		return compareVersions(pi, pj) < 0
	})
}

func compareVersions(a, b *packages.Package) int {
	switch {
	case a.Version == nil && b.Version == nil:
		return 0
	case a.Version == nil:
		return -1
	case b.Version == nil:
		return 1
	}
	return a.Version.Compare(b.Version)
}

func (t *Transaction) resultList() []*packages.Package {
	pkgs := make([]*packages.Package, 0, len(t.result))
	for _, entry := range t.result {
		pkgs = append(pkgs, entry.Package)
	}
	return pkgs
}

func (t *Transaction) resultNames() map[packages.NormalizedName]struct{} {
	names := make(map[packages.NormalizedName]struct{}, len(t.result))
	for _, entry := range t.result {
		names[entry.Package.Name] = struct{}{}
	}
	return names
}

func member(set map[packages.NormalizedName]struct{}, name packages.NormalizedName) bool {
	_, ok := set[name]
	return ok
}
