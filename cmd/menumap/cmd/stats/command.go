// Package stats provides the stats command implementation.
package stats

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/internal/cmd/application"
	"github.com/agentstation/menumap/internal/cmd/output"
	"github.com/agentstation/menumap/internal/cmd/table"
	"github.com/agentstation/menumap/pkg/catalogs"
)

// NewCommand creates the stats command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "stats",
		GroupID: "management",
		Short:   "Show per-category statistics of the catalog",
		Args:    cobra.NoArgs,
		Example: `  menumap stats                             # Category table
  menumap stats -o yaml                     # Same data as YAML`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := app.Catalog()
			if err != nil {
				return err
			}

			stats := table.Stats(cat, catalogs.OrderInsertion)
			format := output.DetectFormat(app.OutputFormat())
			formatter := output.NewFormatter(format)

			var data any = stats
			if format == output.FormatTable {
				data = table.StatsToTableData(stats)
			}
			return formatter.Format(cmd.OutOrStdout(), data)
		},
	}
}
