package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"pakt/internal/config"
	"pakt/internal/ui"
	"pakt/pkg/history"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum entries to show (0 = all)")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded transactions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(config.HistoryPath())
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(historyLimit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			ui.MutedMsg("No transactions recorded yet")
			return nil
		}

		table := ui.NewTableWriter(os.Stdout, []string{"time", "env", "installs", "updates", "removals", "skipped", "status"})
		for _, e := range entries {
			status := ui.SymbolSuccess
			if !e.Success {
				status = ui.SymbolError
			}
			if e.DryRun {
				status += " (dry-run)"
			}
			table.AddRow([]string{
				e.FormatTime(),
				e.Environment,
				strconv.Itoa(e.Installed),
				strconv.Itoa(e.Updated),
				strconv.Itoa(e.Uninstalled),
				strconv.Itoa(e.Skipped),
				status,
			})
		}
		table.Render()
		return nil
	},
}
