// Package names provides the names command implementation.
package names

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/internal/cmd/application"
	"github.com/agentstation/menumap/internal/cmd/emoji"
	"github.com/agentstation/menumap/internal/cmd/output"
	"github.com/agentstation/menumap/internal/cmd/table"
)

// NewCommand creates the names command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "names [archive]",
		GroupID: "management",
		Short:   "List archive file names that need re-decoding",
		Args:    cobra.MaximumNArgs(1),
		Long: `Names scans the entries of a photo archive and lists every file name whose
legacy code page decoding differs from its regional decoding, next to the
corrected name. Without an argument the configured archive is scanned.`,
		Example: `  menumap names                             # Scan the configured archive
  menumap names "old photos.zip"            # Scan another archive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}

			client, err := app.Menumap()
			if err != nil {
				return err
			}
			corrections, err := client.Names(path)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			if format != output.FormatTable {
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), corrections)
			}

			if len(corrections) == 0 {
				if !app.Quiet() {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s All names decode correctly\n", emoji.Success)
				}
				return nil
			}
			return output.NewFormatter(format).Format(cmd.OutOrStdout(), table.CorrectionsToTableData(corrections))
		},
	}
}
