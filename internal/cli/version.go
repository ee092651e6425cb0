package cli

import (
	"github.com/spf13/cobra"

	"pakt/internal/ui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Println("pakt %s", Version)
		if verbose {
			ui.MutedMsg("commit: %s", Commit)
			ui.MutedMsg("built:  %s", BuildTime)
		}
	},
}
