package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/store"
)

var widgetsCmd = &cobra.Command{
	Use:   "widgets",
	Short: "Manage widget minimum spans used during placement",
}

var widgetsSetCmd = &cobra.Command{
	Use:   "set <provider> <min-span-x> <min-span-y>",
	Short: "Record the minimum span a widget provider supports",
	Args:  cobra.ExactArgs(3),
	RunE:  runWidgetsSet,
}

var widgetsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List recorded widget spans",
	Args:  cobra.NoArgs,
	RunE:  runWidgetsLs,
}

func init() {
	rootCmd.AddCommand(widgetsCmd)
	widgetsCmd.AddCommand(widgetsSetCmd, widgetsLsCmd)
}

func runWidgetsSet(cmd *cobra.Command, args []string) error {
	x, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid min-span-x %q: %w", args[1], err)
	}
	y, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid min-span-y %q: %w", args[2], err)
	}

	_, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	return store.SetWidgetSpan(database.DB, args[0], x, y)
}

func runWidgetsLs(cmd *cobra.Command, args []string) error {
	_, database, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer database.Close()

	spans, err := store.LoadWidgetSpans(database.DB)
	if err != nil {
		return err
	}
	providers := make([]string, 0, len(spans))
	for provider := range spans {
		providers = append(providers, provider)
	}
	sort.Strings(providers)
	for _, provider := range providers {
		span := spans[provider]
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%dx%d\n", provider, span[0], span[1])
	}
	return nil
}
