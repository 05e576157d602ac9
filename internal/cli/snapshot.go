package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/snapshot"
	"github.com/pcranston/gridshift/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the stored layout's items as a YAML snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a YAML snapshot, replacing the layout it describes",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	_, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	stored, ok, err := store.LayoutState(database.DB)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("database at %s is not initialized", database.Path())
	}

	snap, err := snapshot.Export(database.DB, stored.TableName(), stored)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args[0], err)
		}
		defer f.Close()
		out = f
	}
	return snap.Write(out)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	snap, err := snapshot.Read(f)
	if err != nil {
		return err
	}

	_, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		return err
	}

	s := store.New(database)
	err = s.WithTx(func(tx *sql.Tx) error {
		// replace whatever the table holds with the snapshot contents
		if err := store.DropItemTable(tx, snap.Layout.TableName()); err != nil {
			return err
		}
		return snapshot.Import(tx, snap)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items into layout %s\n", len(snap.Items), snap.Layout)
	return nil
}
