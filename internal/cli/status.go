package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored layout, the configured target, and whether migration is needed",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	layoutFlags(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	target, err := targetLayout(cmd, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "database: %s\n", database.Path())

	applied, pending, err := database.MigrationStatus()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "schema: %d applied, %d pending\n", len(applied), len(pending))
	if len(pending) > 0 {
		fmt.Fprintln(out, "run 'gridshift init' or 'gridshift migrate' to apply pending schema migrations")
		return nil
	}

	stored, ok, err := store.LayoutState(database.DB)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "layout: not initialized")
		return nil
	}

	fmt.Fprintf(out, "stored layout: %s\n", stored)
	fmt.Fprintf(out, "target layout: %s\n", target)
	if stored.Compatible(target) {
		fmt.Fprintln(out, "migration needed: no")
	} else {
		fmt.Fprintln(out, "migration needed: yes")
	}
	return nil
}
