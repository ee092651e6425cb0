// Package executor applies a planned operation list to an environment store.
// Operations marked skipped are surfaced in the report but never performed.
package executor

import (
	"context"
	"fmt"

	"pakt/internal/ui"
	"pakt/pkg/environment"
	"pakt/pkg/operations"
)

// Executor applies operations in plan order.
type Executor struct {
	env      *environment.Store
	dryRun   bool
	verbose  bool
	progress bool
}

// New creates a new Executor writing through the given environment store.
func New(env *environment.Store, dryRun, verbose bool) *Executor {
	return &Executor{
		env:     env,
		dryRun:  dryRun,
		verbose: verbose,
	}
}

// SetProgress enables the spinner while executing. Off by default so
// non-interactive runs stay clean.
func (e *Executor) SetProgress(progress bool) {
	e.progress = progress
}

// Report summarizes an executed plan.
type Report struct {
	Installed   int
	Updated     int
	Uninstalled int
	Skipped     int
}

// Total returns the number of operations that were actually performed.
func (r Report) Total() int {
	return r.Installed + r.Updated + r.Uninstalled
}

// Execute runs the operations in order, stopping at the first failure or
// context cancellation. The returned report counts what was done up to that
// point.
func (e *Executor) Execute(ctx context.Context, ops []operations.Operation) (Report, error) {
	var report Report

	var sp *ui.Spinner
	if e.progress && !e.dryRun && !e.verbose {
		sp = ui.NewSpinner("Applying plan")
		sp.Start()
		defer sp.Stop()
	}

	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if op.Skipped() {
			report.Skipped++
			if e.verbose {
				ui.MutedMsg("Skipping %s of %s: %s", op.JobType(), op.Package(), op.SkipReason())
			}
			continue
		}

		if sp != nil {
			sp.UpdateMessage(fmt.Sprintf("%s %s", op.JobType(), op.Package()))
		}
		if e.dryRun {
			ui.InfoMsg("Would %s %s", op.JobType(), op.Package())
			e.count(op, &report)
			continue
		}
		if e.verbose {
			ui.InfoMsg("%s", op)
		}

		if err := e.perform(op); err != nil {
			return report, fmt.Errorf("failed to %s %s: %w", op.JobType(), op.Package(), err)
		}
		e.count(op, &report)
	}

	return report, nil
}

func (e *Executor) perform(op operations.Operation) error {
	switch op := op.(type) {
	case *operations.Install:
		return e.env.Add(op.Package())
	case *operations.Update:
		return e.env.Add(op.TargetPackage())
	case *operations.Uninstall:
		return e.env.Remove(op.Package().Name)
	}
	return fmt.Errorf("unknown operation type %T", op)
}

func (e *Executor) count(op operations.Operation, report *Report) {
	switch op.(type) {
	case *operations.Install:
		report.Installed++
	case *operations.Update:
		report.Updated++
	case *operations.Uninstall:
		report.Uninstalled++
	}
}
