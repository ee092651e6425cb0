package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"pakt/internal/config"
	"pakt/internal/ui"
	"pakt/pkg/environment"
	"pakt/pkg/packages"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect and edit the environment's installed-package record",
}

func init() {
	envCmd.AddCommand(envListCmd)
	envCmd.AddCommand(envAddCmd)
	envCmd.AddCommand(envRemoveCmd)
}

func openEnvironment() (*environment.Store, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return environment.Open(config.EnvironmentPath(envName))
}

var envListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the packages recorded as installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		defer env.Close()

		installed, err := env.Installed()
		if err != nil {
			return err
		}
		if len(installed) == 0 {
			ui.MutedMsg("Environment %q is empty", envName)
			return nil
		}

		table := ui.NewTableWriter(os.Stdout, []string{"name", "version", "source"})
		for _, pkg := range installed {
			source := string(pkg.SourceType)
			if source == "" {
				source = "-"
			}
			table.AddRow([]string{
				ui.PackageName.Sprint(string(pkg.Name)),
				ui.PackageVersion.Sprint(pkg.Version.String()),
				source,
			})
		}
		table.Render()
		return nil
	},
}

var envAddCmd = &cobra.Command{
	Use:   "add name==version [name==version...]",
	Short: "Record packages as installed (for seeding or testing)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		defer env.Close()

		for _, arg := range args {
			name, version, ok := strings.Cut(arg, "==")
			if !ok {
				return fmt.Errorf("invalid package spec %q, want name==version", arg)
			}
			pkg, err := packages.New(name, version)
			if err != nil {
				return err
			}
			if err := env.Add(pkg); err != nil {
				return err
			}
			ui.SuccessMsg("Recorded %s", pkg)
		}
		return nil
	},
}

var envRemoveCmd = &cobra.Command{
	Use:   "remove name [name...]",
	Short: "Drop packages from the installed record",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnvironment()
		if err != nil {
			return err
		}
		defer env.Close()

		for _, arg := range args {
			name := packages.Normalize(arg)
			if err := env.Remove(name); err != nil {
				return err
			}
			ui.SuccessMsg("Removed %s", name)
		}
		return nil
	},
}
