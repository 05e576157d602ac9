package cli

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/domain"
	"github.com/pcranston/gridshift/internal/render"
	"github.com/pcranston/gridshift/internal/store"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show a unified diff of the stored layout against the target layout's table",
	Long: `Diff renders the stored layout and the target layout's item table as text
grids and prints a unified diff between them, without migrating anything.
An absent target table renders as an empty layout.`,
	Args: cobra.NoArgs,
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	layoutFlags(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	target, err := targetLayout(cmd, cfg)
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

	storedItems, err := store.ListItems(database.DB, stored.TableName())
	if err != nil {
		return err
	}

	var targetItems []*domain.Item
	if exists, err := store.TableExists(database.DB, target.TableName()); err != nil {
		return err
	} else if exists && target.TableName() != stored.TableName() {
		targetItems, err = store.ListItems(database.DB, target.TableName())
		if err != nil {
			return err
		}
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(render.GridText(storedItems, stored)),
		B:        difflib.SplitLines(render.GridText(targetItems, target)),
		FromFile: stored.String(),
		ToFile:   target.String(),
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return err
	}
	if text == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "layouts render identically")
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
