package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the item database and record the initial layout",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	layoutFlags(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		return err
	}

	target, err := targetLayout(cmd, cfg)
	if err != nil {
		return err
	}

	s := store.New(database)
	err = s.WithTx(func(tx *sql.Tx) error {
		if _, ok, err := store.LayoutState(tx); err != nil {
			return err
		} else if ok {
			return fmt.Errorf("database at %s is already initialized", database.Path())
		}
		if err := store.EnsureItemTable(tx, target.TableName()); err != nil {
			return err
		}
		return store.SetLayoutState(tx, target)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s with layout %s\n", database.Path(), target)
	return nil
}
