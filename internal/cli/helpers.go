package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pcranston/gridshift/internal/config"
	"github.com/pcranston/gridshift/internal/db"
	"github.com/pcranston/gridshift/internal/domain"
	"github.com/pcranston/gridshift/internal/render"
)

// openApp loads the configuration (honoring the --db flag) and opens the
// database. The caller owns closing it.
func openApp(cmd *cobra.Command) (*config.Config, *db.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if dbFlag, _ := cmd.Flags().GetString("db"); dbFlag != "" {
		cfg.DBPath = dbFlag
	}
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, database, nil
}

// targetLayout builds the target descriptor from config with any --cols,
// --rows, --hotseat flag overrides.
func targetLayout(cmd *cobra.Command, cfg *config.Config) (domain.Descriptor, error) {
	target := cfg.Target()
	if cmd.Flags().Changed("cols") {
		target.Columns, _ = cmd.Flags().GetInt("cols")
	}
	if cmd.Flags().Changed("rows") {
		target.Rows, _ = cmd.Flags().GetInt("rows")
	}
	if cmd.Flags().Changed("hotseat") {
		target.HotseatCount, _ = cmd.Flags().GetInt("hotseat")
	}
	if err := target.Validate(); err != nil {
		return domain.Descriptor{}, err
	}
	return target, nil
}

// layoutFlags registers the target layout override flags on a command.
func layoutFlags(cmd *cobra.Command) {
	cmd.Flags().Int("cols", 0, "Target grid columns (overrides config)")
	cmd.Flags().Int("rows", 0, "Target grid rows (overrides config)")
	cmd.Flags().Int("hotseat", 0, "Target hotseat capacity (overrides config)")
}

// outputFormat resolves the render format from the --output flag or config.
func outputFormat(cmd *cobra.Command, cfg *config.Config) (render.Format, error) {
	name := cfg.Output
	if flag, _ := cmd.Flags().GetString("output"); flag != "" {
		name = flag
	}
	switch render.Format(name) {
	case render.FormatTable, render.FormatJSON, render.FormatYAML:
		return render.Format(name), nil
	default:
		return "", fmt.Errorf("unknown output format %q", name)
	}
}
