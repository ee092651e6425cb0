// Package cli implements the command-line interface for pakt.
package cli

import (
	"github.com/spf13/cobra"

	"pakt/internal/config"
	"pakt/internal/ui"
)

var (
	// Global flags
	cfgFile string
	envName string
	dryRun  bool
	yes     bool
	verbose bool
	noColor bool

	// Global state
	cfg *config.Config
)

// Build metadata - set at build time via ldflags
var (
	Version   = "0.1.0-dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pakt",
	Short: "Reconciliation planner for locked package sets",
	Long: `Pakt diffs a resolved lockfile against what an environment actually
has installed and computes the minimal ordered set of install, update
and uninstall operations needed to reconcile the two.

Examples:
  pakt plan                     # Show the plan for pakt.lock
  pakt plan --sync              # Also remove packages pakt doesn't manage
  pakt apply                    # Apply the plan after confirmation
  pakt apply -n                 # Dry-run: report without touching anything
  pakt env list                 # Show what the environment has installed`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&envName, "env", "e", "", "environment name (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "show what would happen without executing")
	rootCmd.PersistentFlags().BoolVarP(&yes, "yes", "y", false, "assume yes to all prompts")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(historyCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		ui.ErrorMsg("%v", err)
		return err
	}
	return nil
}

func initializeApp() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	ui.Init(cfg.Output.Color && !noColor, cfg.Output.Unicode)

	if envName == "" {
		envName = cfg.General.Environment
	}
	if cfg.General.DryRun {
		dryRun = true
	}
	if cfg.Output.Verbose {
		verbose = true
	}
	if cfg.General.AutoConfirm {
		yes = true
	}
	return nil
}
