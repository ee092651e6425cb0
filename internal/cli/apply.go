package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pakt/internal/config"
	"pakt/internal/executor"
	"pakt/internal/ui"
	"pakt/pkg/history"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply the plan to the environment",
	Long: `Apply computes the same plan as 'pakt plan' and executes it against
the environment store, recording the transaction in the history. Skipped
operations are reported but not performed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := buildPlan(cmd)
		if err != nil {
			return err
		}
		defer pc.env.Close()

		ui.PrintPlan(os.Stdout, pc.ops)
		if len(pc.ops) == 0 {
			return nil
		}

		pending := 0
		for _, op := range pc.ops {
			if !op.Skipped() {
				pending++
			}
		}
		if pending == 0 {
			ui.SuccessMsg("Environment already up to date")
			return nil
		}

		if !yes && !dryRun {
			ok, err := ui.Confirm(fmt.Sprintf("Apply %d operations to environment %q?", pending, envName), true)
			if err != nil {
				return err
			}
			if !ok {
				ui.MutedMsg("Aborted")
				return nil
			}
		}

		exec := executor.New(pc.env, dryRun, verbose)
		exec.SetProgress(!verbose)

		entry := history.NewEntry(envName)
		entry.DryRun = dryRun

		report, execErr := exec.Execute(cmd.Context(), pc.ops)
		entry.Installed = report.Installed
		entry.Updated = report.Updated
		entry.Uninstalled = report.Uninstalled
		entry.Skipped = report.Skipped

		if execErr != nil {
			entry.MarkFailed(execErr)
		} else {
			entry.MarkSuccess()
			if !dryRun {
				if err := pc.env.SetApplied(pc.locked); err != nil {
					return fmt.Errorf("failed to record applied set: %w", err)
				}
			}
		}

		if err := recordHistory(entry); err != nil {
			ui.WarningMsg("Could not record history: %v", err)
		}
		if execErr != nil {
			return execErr
		}

		if dryRun {
			ui.SuccessMsg("Dry-run complete: %d operations would run, %d skipped", report.Total(), report.Skipped)
		} else {
			ui.SuccessMsg("Applied %d operations (%d skipped)", report.Total(), report.Skipped)
		}
		return nil
	},
}

func recordHistory(entry *history.Entry) error {
	if err := config.EnsureDataDir(); err != nil {
		return err
	}
	store, err := history.Open(config.HistoryPath())
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(entry)
}
