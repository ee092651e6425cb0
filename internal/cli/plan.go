package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pakt/internal/config"
	"pakt/internal/ui"
	"pakt/pkg/environment"
	"pakt/pkg/operations"
	"pakt/pkg/packages"
	"pakt/pkg/project"
	"pakt/pkg/transaction"
)

var (
	manifestPath  string
	lockPath      string
	synchronize   bool
	noUninstalls  bool
	skipDirectory bool
	extrasList    []string
)

func init() {
	for _, cmd := range []*cobra.Command{planCmd, applyCmd} {
		cmd.Flags().StringVar(&manifestPath, "manifest", project.ManifestFile, "path to the project manifest")
		cmd.Flags().StringVar(&lockPath, "lock", project.LockFile, "path to the lockfile")
		cmd.Flags().BoolVar(&synchronize, "sync", false, "remove installed packages absent from the lock")
		cmd.Flags().BoolVar(&noUninstalls, "no-uninstalls", false, "keep packages that dropped out of the lock")
		cmd.Flags().BoolVar(&skipDirectory, "skip-directory", false, "do not install new directory-sourced packages")
		cmd.Flags().StringSliceVar(&extrasList, "extras", nil, "extras to solicit (optional packages outside them are removed)")
	}
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Compute the operations needed to reconcile the environment",
	Long: `Plan diffs the lockfile against the environment's installed packages
and prints the ordered operations an apply would perform. Planning never
modifies anything.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := buildPlan(cmd)
		if err != nil {
			return err
		}
		defer pc.env.Close()

		ui.PrintPlan(os.Stdout, pc.ops)
		return nil
	},
}

// planContext carries everything a computed plan needs downstream.
type planContext struct {
	env    *environment.Store
	root   *packages.Package
	locked []*packages.Package
	ops    []operations.Operation
}

// buildPlan loads the manifest, lock and environment, and runs the planner.
// The caller owns pc.env and must close it.
func buildPlan(cmd *cobra.Command) (*planContext, error) {
	manifest, err := project.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	root, err := manifest.RootPackage()
	if err != nil {
		return nil, err
	}

	lock, err := project.LoadLock(lockPath)
	if err != nil {
		return nil, err
	}
	result, err := lock.ResultPackages()
	if err != nil {
		return nil, err
	}
	locked, err := lock.PackageList()
	if err != nil {
		return nil, err
	}

	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	env, err := environment.Open(config.EnvironmentPath(envName))
	if err != nil {
		return nil, err
	}

	installed, err := env.Installed()
	if err != nil {
		env.Close()
		return nil, err
	}
	current, err := env.Applied()
	if err != nil {
		env.Close()
		return nil, err
	}

	opts := transaction.DefaultOptions()
	opts.WithUninstalls = !noUninstalls
	opts.Synchronize = synchronize
	opts.SkipDirectory = skipDirectory
	if cmd.Flags().Changed("extras") {
		// --extras with no names still filters: it means "no extras
		// solicited", which removes all optional packages.
		opts.Extras = make(map[packages.NormalizedName]struct{}, len(extrasList))
		for _, extra := range extrasList {
			opts.Extras[packages.Normalize(extra)] = struct{}{}
		}
	}

	tx := transaction.New(current, result, installed, root)
	ops, err := tx.CalculateOperations(opts)
	if err != nil {
		env.Close()
		return nil, err
	}

	return &planContext{env: env, root: root, locked: locked, ops: ops}, nil
}
