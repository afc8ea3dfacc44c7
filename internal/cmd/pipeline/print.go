package pipeline

import (
	"fmt"
	"io"

	"github.com/agentstation/menumap/internal/cmd/emoji"
	"github.com/agentstation/menumap/internal/cmd/output"
	"github.com/agentstation/menumap/internal/cmd/table"
	pkgsync "github.com/agentstation/menumap/pkg/sync"
)

// Print writes a run result. JSON and YAML go to w as a single document;
// the table format writes the source and category tables to w and the
// status lines to errW.
func Print(w, errW io.Writer, format output.Format, quiet bool, result *pkgsync.Result) error {
	if format == output.FormatJSON || format == output.FormatYAML {
		return output.NewFormatter(format).Format(w, result)
	}

	formatter := output.NewFormatter(output.FormatTable)
	if len(result.SourceResults) > 0 {
		if err := formatter.Format(w, table.SourcesToTableData(result.SourceResults)); err != nil {
			return err
		}
	}
	if err := formatter.Format(w, table.CategoriesToTableData(result.Categories)); err != nil {
		return err
	}

	if quiet {
		return nil
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(errW, "%s %s\n", emoji.Warning, warning)
	}
	for _, sr := range result.SourceResults {
		if len(sr.Unused) > 0 {
			fmt.Fprintf(errW, "%s %s: %d records matched no dish\n", emoji.Warning, sr.SourceID, len(sr.Unused))
		}
	}
	if result.Corrections > 0 {
		fmt.Fprintf(errW, "%s %d archive names re-decoded\n", emoji.Info, result.Corrections)
	}

	if result.DryRun {
		fmt.Fprintf(errW, "%s Dry run, nothing written\n", emoji.Optional)
	} else {
		fmt.Fprintf(errW, "%s Saved %s\n", emoji.Success, result.OutputPath)
	}
	fmt.Fprintf(errW, "%s\n", result.Summary())
	return nil
}
