// Package cmdutil provides shared flags for menumap commands.
package cmdutil

import (
	"time"

	"github.com/spf13/cobra"
)

// RunFlags holds flags shared by the commands that write the catalog.
type RunFlags struct {
	DryRun  bool
	Output  string
	Timeout time.Duration
}

// AddRunFlags adds the write-command flags to cmd.
func AddRunFlags(cmd *cobra.Command) *RunFlags {
	flags := &RunFlags{}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false,
		"Compute and report changes without writing anything")
	cmd.Flags().BoolVar(&flags.DryRun, "dry", false, "")
	_ = cmd.Flags().MarkHidden("dry") // Hidden but functional
	cmd.Flags().StringVar(&flags.Output, "catalog", "",
		"Catalog file to write (default from config output.catalog)")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", 0,
		"Abort the run after this long (0 disables)")

	return flags
}
