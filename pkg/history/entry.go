// Package history records applied transactions with BoltDB.
package history

import (
	"fmt"
	"time"
)

// Entry summarizes one applied (or attempted) transaction.
type Entry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`

	Installed   int  `json:"installed"`
	Updated     int  `json:"updated"`
	Uninstalled int  `json:"uninstalled"`
	Skipped     int  `json:"skipped"`
	DryRun      bool `json:"dry_run,omitempty"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewEntry creates an entry for a transaction in the given environment.
func NewEntry(env string) *Entry {
	return &Entry{
		ID:          time.Now().Format("20060102150405.000000"),
		Timestamp:   time.Now(),
		Environment: env,
	}
}

// MarkSuccess marks the entry as successful.
func (e *Entry) MarkSuccess() {
	e.Success = true
}

// MarkFailed marks the entry as failed with an error message.
func (e *Entry) MarkFailed(err error) {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
}

// FormatTime returns a human-readable timestamp.
func (e *Entry) FormatTime() string {
	return e.Timestamp.Format("2006-01-02 15:04:05")
}

// Summary returns a one-line description of the transaction.
func (e *Entry) Summary() string {
	status := "success"
	if !e.Success {
		status = "failed"
	}
	if e.DryRun {
		status += ", dry-run"
	}
	return fmt.Sprintf("%s [%s] %d installs, %d updates, %d removals, %d skipped (%s)",
		e.FormatTime(), e.Environment, e.Installed, e.Updated, e.Uninstalled, e.Skipped, status)
}
