package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/render"
	"github.com/pcranston/gridshift/internal/store"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Render the stored layout as a text grid",
	Args:  cobra.NoArgs,
	RunE:  runGrid,
}

func init() {
	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
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

	items, err := store.ListItems(database.DB, stored.TableName())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), render.GridText(items, stored))
	return nil
}
