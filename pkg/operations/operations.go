// Package operations models the three lifecycle actions a plan is made of:
// install, update and uninstall. Each operation carries a priority used for
// output ordering and an optional skip reason that turns it into a reported
// no-op.
package operations

import (
	"fmt"

	"pakt/pkg/packages"
)

// Operation is one planned action. Exactly three implementations exist:
// *Install, *Update and *Uninstall. Consumers switch over the concrete type;
// Package returns the operation's subject (the destination package for an
// update).
type Operation interface {
	// JobType returns the short verb for this operation ("install",
	// "update", "uninstall").
	JobType() string

	// Package returns the primary subject of the operation.
	Package() *packages.Package

	// Priority returns the externally-assigned ordering key. Larger
	// priorities execute earlier.
	Priority() int

	// Skipped reports whether the operation is a no-op kept only for
	// reporting. A skipped operation must never be performed.
	Skipped() bool

	// SkipReason returns why the operation was skipped, or "".
	SkipReason() string
}

// base holds the fields shared by all operation kinds.
type base struct {
	priority   int
	skipReason string
}

func (b *base) Priority() int      { return b.priority }
func (b *base) Skipped() bool      { return b.skipReason != "" }
func (b *base) SkipReason() string { return b.skipReason }

// Install adds a package that is not currently present.
type Install struct {
	base
	pkg *packages.Package
}

// NewInstall creates an install operation for pkg.
func NewInstall(pkg *packages.Package, priority int) *Install {
	return &Install{base: base{priority: priority}, pkg: pkg}
}

func (o *Install) JobType() string            { return "install" }
func (o *Install) Package() *packages.Package { return o.pkg }

// Skip marks the install as a reported no-op and returns it.
func (o *Install) Skip(reason string) *Install {
	o.skipReason = reason
	return o
}

func (o *Install) String() string {
	return fmt.Sprintf("Installing %s", o.pkg)
}

// Update replaces an installed package with a different resolved one.
type Update struct {
	base
	from *packages.Package
	to   *packages.Package
}

// NewUpdate creates an update operation from the installed package to the
// resolved one.
func NewUpdate(from, to *packages.Package, priority int) *Update {
	return &Update{base: base{priority: priority}, from: from, to: to}
}

func (o *Update) JobType() string { return "update" }

// Package returns the destination package; it is the sort subject.
func (o *Update) Package() *packages.Package { return o.to }

// InitialPackage returns the currently-installed package being replaced.
func (o *Update) InitialPackage() *packages.Package { return o.from }

// TargetPackage returns the package being updated to.
func (o *Update) TargetPackage() *packages.Package { return o.to }

// Skip marks the update as a reported no-op and returns it.
func (o *Update) Skip(reason string) *Update {
	o.skipReason = reason
	return o
}

func (o *Update) String() string {
	return fmt.Sprintf("Updating %s to %s", o.from, o.to)
}

// Uninstall removes an installed package. Uninstalls carry no priority of
// their own; they sort with priority zero.
type Uninstall struct {
	base
	pkg *packages.Package
}

// NewUninstall creates an uninstall operation for an installed package.
func NewUninstall(pkg *packages.Package) *Uninstall {
	return &Uninstall{pkg: pkg}
}

func (o *Uninstall) JobType() string            { return "uninstall" }
func (o *Uninstall) Package() *packages.Package { return o.pkg }

// Skip marks the uninstall as a reported no-op and returns it.
func (o *Uninstall) Skip(reason string) *Uninstall {
	o.skipReason = reason
	return o
}

func (o *Uninstall) String() string {
	return fmt.Sprintf("Uninstalling %s", o.pkg)
}
