// Package pipeline runs the catalog-writing commands and prints their
// results.
package pipeline

import (
	"context"
	"os"

	"github.com/agentstation/menumap"
	"github.com/agentstation/menumap/internal/cmd/application"
	"github.com/agentstation/menumap/internal/cmd/cmdutil"
	"github.com/agentstation/menumap/internal/cmd/output"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/sources"
	pkgsync "github.com/agentstation/menumap/pkg/sync"
)

// Execute runs one catalog pipeline for a command and prints its result.
// sourceNames restricts the applied sources; empty means every configured
// source.
func Execute(ctx context.Context, app application.Application, mode pkgsync.Mode, flags *cmdutil.RunFlags, sourceNames []string) error {
	ctx = logging.WithLogger(ctx, app.Logger())
	ctx = logging.WithRunID(ctx)
	logger := logging.FromContext(ctx)

	ids, err := menumap.ParseSources(sourceNames...)
	if err != nil {
		return err
	}

	client, err := app.Menumap()
	if err != nil {
		return err
	}

	logger.Debug().
		Str("mode", mode.String()).
		Bool("dry_run", flags.DryRun).
		Int("sources", len(ids)).
		Msg("Starting run")

	opts := BuildOptions(flags, ids)
	var result *pkgsync.Result
	switch mode {
	case pkgsync.ModeRebuild:
		result, err = client.Rebuild(ctx, opts...)
	case pkgsync.ModeImport:
		result, err = client.Import(ctx, opts...)
	default:
		result, err = client.Enrich(ctx, opts...)
	}
	if err != nil {
		return &errors.ProcessError{
			Operation: mode.String() + " catalog",
			Command:   mode.String(),
			Err:       err,
		}
	}

	return Print(os.Stdout, os.Stderr, output.DetectFormat(app.OutputFormat()), app.Quiet(), result)
}

// BuildOptions creates run options from the command flags.
func BuildOptions(flags *cmdutil.RunFlags, ids []sources.ID) []pkgsync.Option {
	var opts []pkgsync.Option

	if flags.DryRun {
		opts = append(opts, pkgsync.WithDryRun(true))
	}
	if flags.Output != "" {
		opts = append(opts, pkgsync.WithOutputPath(flags.Output))
	}
	if flags.Timeout > 0 {
		opts = append(opts, pkgsync.WithTimeout(flags.Timeout))
	}
	if len(ids) > 0 {
		opts = append(opts, pkgsync.WithSources(ids...))
	}

	return opts
}
