package app

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/menumap/cmd/menumap/cmd/enrich"
	"github.com/agentstation/menumap/cmd/menumap/cmd/importcmd"
	"github.com/agentstation/menumap/cmd/menumap/cmd/names"
	"github.com/agentstation/menumap/cmd/menumap/cmd/rebuild"
	"github.com/agentstation/menumap/cmd/menumap/cmd/stats"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(rebuild.NewCommand(a))
	rootCmd.AddCommand(importcmd.NewCommand(a))
	rootCmd.AddCommand(enrich.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(stats.NewCommand(a))
	rootCmd.AddCommand(names.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.createVersionCommand())
}

// createVersionCommand creates the version command.
func (a *App) createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("menumap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:     %s\n", a.commit)
				cmd.Printf("  built:      %s\n", a.date)
				cmd.Printf("  built by:   %s\n", a.builtBy)
				cmd.Printf("  go version: %s\n", runtime.Version())
				cmd.Printf("  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
			}
		},
	}
}
