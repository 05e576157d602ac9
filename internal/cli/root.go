package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gridshift",
	Short: "Migrate launcher grid layouts between sizes",
	Long: `gridshift manages a launcher item database and migrates its workspace
grid and hotseat from one layout size to another, preserving as many items as
possible without overlap.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to database file (overrides GRIDSHIFT_DB_PATH)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: table, json, yaml")
}
