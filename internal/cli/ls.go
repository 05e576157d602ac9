package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/render"
	"github.com/pcranston/gridshift/internal/store"
)

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the items of the stored layout",
	Args:  cobra.NoArgs,
	RunE:  runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	cfg, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	format, err := outputFormat(cmd, cfg)
	if err != nil {
		return err
	}

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

	return render.NewRenderer(cmd.OutOrStdout(), format).RenderItems(items)
}
