package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"pakt/pkg/operations"
)

// Table wraps tabwriter for consistent styling.
type Table struct {
	writer *tabwriter.Writer
}

// NewTable creates a new table that writes to stdout.
func NewTable(header []string) *Table {
	return NewTableWriter(os.Stdout, header)
}

// NewTableWriter creates a new table that writes to a specific writer. The
// header row is written immediately, in bold uppercase.
func NewTableWriter(w io.Writer, header []string) *Table {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(header) > 0 {
		headerRow := make([]string, len(header))
		for i, h := range header {
			headerRow[i] = Bold(strings.ToUpper(h))
		}
		fmt.Fprintln(tw, strings.Join(headerRow, "\t"))
	}
	return &Table{writer: tw}
}

// AddRow adds a row to the table.
func (t *Table) AddRow(row []string) {
	fmt.Fprintln(t.writer, strings.Join(row, "\t"))
}

// Render outputs the table.
func (t *Table) Render() {
	t.writer.Flush()
}

// PrintPlan prints an ordered operation list as a table.
func PrintPlan(w io.Writer, ops []operations.Operation) {
	if len(ops) == 0 {
		fmt.Fprintln(w, Muted.Sprint("Nothing to do"))
		return
	}

	table := NewTableWriter(w, []string{"action", "package", "version", "note"})
	for _, op := range ops {
		verb := JobColor(op.JobType()).Sprint(op.JobType())

		pkg := op.Package()
		version := ""
		if pkg.Version != nil {
			version = PackageVersion.Sprint(pkg.Version.String())
		}
		if up, ok := op.(*operations.Update); ok && up.InitialPackage().Version != nil {
			version = fmt.Sprintf("%s %s %s",
				up.InitialPackage().Version, SymbolArrow, PackageVersion.Sprint(pkg.Version.String()))
		}

		note := ""
		if op.Skipped() {
			verb = Muted.Sprint(op.JobType())
			note = Muted.Sprint(SymbolSkip + " " + op.SkipReason())
		}

		table.AddRow([]string{verb, PackageName.Sprint(string(pkg.Name)), version, note})
	}
	table.Render()
}
