// Package enrich provides the enrich command implementation.
package enrich

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/internal/cmd/application"
	"github.com/agentstation/menumap/internal/cmd/cmdutil"
	"github.com/agentstation/menumap/internal/cmd/pipeline"
	pkgsync "github.com/agentstation/menumap/pkg/sync"
)

// NewCommand creates the enrich command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *cmdutil.RunFlags

	cmd := &cobra.Command{
		Use:       "enrich [markup|transcript|prices ...]",
		GroupID:   "core",
		Short:     "Fill empty dish fields from source documents",
		ValidArgs: []string{"markup", "transcript", "prices"},
		Long: `Enrich loads the existing catalog and applies source documents to it
without reading the photo archive. Only empty fields are filled.

With no arguments every configured source is applied. Naming a source
requires it to be configured.`,
		Example: `  menumap enrich                            # Apply all configured sources
  menumap enrich transcript                 # Apply the transcript only
  menumap enrich prices --dry-run           # Preview the price fill`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pipeline.Execute(cmd.Context(), app, pkgsync.ModeEnrich, flags, args)
		},
	}

	flags = cmdutil.AddRunFlags(cmd)

	return cmd
}
