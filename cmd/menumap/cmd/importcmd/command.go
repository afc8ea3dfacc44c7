// Package importcmd provides the import command implementation.
package importcmd

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/internal/cmd/application"
	"github.com/agentstation/menumap/internal/cmd/cmdutil"
	"github.com/agentstation/menumap/internal/cmd/pipeline"
	pkgsync "github.com/agentstation/menumap/pkg/sync"
)

// NewCommand creates the import command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.RunFlags

	cmd := &cobra.Command{
		Use:     "import",
		GroupID: "core",
		Short:   "Add dishes for new archive images",
		Args:    cobra.NoArgs,
		Long: `Import keeps the current catalog and adds a dish for every archive image
whose name is not in it yet. New dishes continue after the largest id and
are enriched from the configured sources. Existing values are never
overwritten and category order is preserved.`,
		Example: `  menumap import                            # Add new dishes
  menumap import --dry-run                  # Preview what would be added`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return pipeline.Execute(cmd.Context(), app, pkgsync.ModeImport, flags, nil)
		},
	}

	flags = cmdutil.AddRunFlags(cmd)

	return cmd
}
