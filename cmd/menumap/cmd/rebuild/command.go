// Package rebuild provides the rebuild command implementation.
package rebuild

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/internal/cmd/application"
	"github.com/agentstation/menumap/internal/cmd/cmdutil"
	"github.com/agentstation/menumap/internal/cmd/pipeline"
	pkgsync "github.com/agentstation/menumap/pkg/sync"
)

// NewCommand creates the rebuild command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.RunFlags

	cmd := &cobra.Command{
		Use:     "rebuild",
		GroupID: "core",
		Short:   "Rebuild the catalog from the photo archive",
		Args:    cobra.NoArgs,
		Long: `Rebuild discards the current catalog and recreates it from the photo
archive:

• Clear the image asset directory
• Create one dish per image, with ids from 1
• Enrich every dish from the configured markup, transcript and price sources
• Write the images and the catalog, categories sorted by name

Nothing is written when a configured source is missing.`,
		Example: `  menumap rebuild                           # Rebuild from the configured archive
  menumap rebuild --dry-run                 # Preview the result
  menumap rebuild -o json                   # Print the run result as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return pipeline.Execute(cmd.Context(), app, pkgsync.ModeRebuild, flags, nil)
		},
	}

	flags = cmdutil.AddRunFlags(cmd)

	return cmd
}
