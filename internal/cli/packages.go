package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/store"
)

var packagesCmd = &cobra.Command{
	Use:   "packages",
	Short: "Manage the installed-package set used to validate items",
}

var packagesAddCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Mark packages as installed",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPackagesAdd,
}

var packagesRmCmd = &cobra.Command{
	Use:   "rm <name>...",
	Short: "Remove packages from the validity set",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPackagesRm,
}

var packagesLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List known packages",
	Args:  cobra.NoArgs,
	RunE:  runPackagesLs,
}

var packagesInstalling bool

func init() {
	rootCmd.AddCommand(packagesCmd)
	packagesCmd.AddCommand(packagesAddCmd, packagesRmCmd, packagesLsCmd)
	packagesAddCmd.Flags().BoolVar(&packagesInstalling, "installing", false, "Mark as still installing")
}

func runPackagesAdd(cmd *cobra.Command, args []string) error {
	_, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	for _, name := range args {
		if err := store.AddPackage(database.DB, name, packagesInstalling); err != nil {
			return err
		}
	}
	return nil
}

func runPackagesRm(cmd *cobra.Command, args []string) error {
	_, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	for _, name := range args {
		if err := store.RemovePackage(database.DB, name); err != nil {
			return err
		}
	}
	return nil
}

func runPackagesLs(cmd *cobra.Command, args []string) error {
	_, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	names, err := store.ListPackages(database.DB)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
