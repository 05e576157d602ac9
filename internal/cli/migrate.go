package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/migrate"
	"github.com/pcranston/gridshift/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate items to the target layout if it differs from the stored one",
	Long: `Migrate runs the grid size migration: items from the stored layout that
have no structural counterpart in the target layout are re-placed onto the
target grid and hotseat without overlap. The whole run executes inside one
transaction; on any failure the database is left exactly as it was.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	layoutFlags(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
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
	logger := loggerFor(cmd)

	s := store.New(database)
	var changed, needed bool
	err = s.WithTx(func(tx *sql.Tx) error {
		source, ok, err := store.LayoutState(tx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("database at %s is not initialized, run 'gridshift init' first", database.Path())
		}
		if source.Compatible(target) {
			return nil
		}
		needed = true

		if err := store.EnsureItemTable(tx, source.TableName()); err != nil {
			return err
		}
		if err := store.EnsureItemTable(tx, target.TableName()); err != nil {
			return err
		}

		packages, err := store.LoadPackageSet(tx)
		if err != nil {
			return err
		}
		widgets, err := store.LoadWidgetSpans(tx)
		if err != nil {
			return err
		}

		runner := &migrate.Runner{
			Src:              store.NewReader(tx, source.TableName(), packages, widgets),
			Dest:             store.NewReader(tx, target.TableName(), packages, widgets),
			Writer:           store.NewWriter(tx, source.TableName(), target.TableName()),
			SrcLayout:        source,
			DestLayout:       target,
			ReserveFirstCell: cfg.ReserveFirstCell,
			Logger:           logger,
		}
		changed, err = runner.Run()
		if err != nil {
			return err
		}

		if source.TableName() != target.TableName() {
			if err := store.DropItemTable(tx, source.TableName()); err != nil {
				return err
			}
		}
		return store.SetLayoutState(tx, target)
	})
	if err != nil {
		return err
	}

	switch {
	case !needed:
		fmt.Fprintf(cmd.OutOrStdout(), "Layout already %s, nothing to migrate\n", target)
	case changed:
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated to layout %s\n", target)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "Adopted layout %s, no item changes\n", target)
	}
	return nil
}
