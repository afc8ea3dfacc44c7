package sync

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agentstation/menumap/internal/matcher"
	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/reconciler"
	"github.com/agentstation/menumap/pkg/sources"
)

// Result represents the complete result of a catalog run.
type Result struct {
	Mode Mode `json:"mode" yaml:"mode"` // Which run produced the result

	// Overall statistics
	Added      int `json:"added" yaml:"added"`             // Dishes created from new images
	Skipped    int `json:"skipped" yaml:"skipped"`         // Images whose dish already existed
	Invalid    int `json:"invalid" yaml:"invalid"`         // Images without a usable dish name
	TotalItems int `json:"total_items" yaml:"total_items"` // Dishes in the resulting catalog

	Categories    []CategoryResult `json:"categories" yaml:"categories"` // Per-category counts in output order
	SourceResults []*SourceResult  `json:"sources" yaml:"sources"`       // Results per applied source

	// Archive and asset handling
	Corrections   int `json:"corrections" yaml:"corrections"`       // File names fixed by the code page scan
	Images        int `json:"images" yaml:"images"`                 // Images written to the asset directory
	AssetsCleared int `json:"assets_cleared" yaml:"assets_cleared"` // Files removed from the asset directory

	// Operation metadata
	DryRun     bool     `json:"dry_run" yaml:"dry_run"`         // Whether this was a dry run
	OutputPath string   `json:"output_path" yaml:"output_path"` // Where the catalog was written
	Warnings   []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// CategoryResult is the dish count of one category.
type CategoryResult struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// SourceResult represents what a single source contributed.
type SourceResult struct {
	SourceID sources.ID     `json:"source" yaml:"source"`                     // The source that was applied
	Partials int            `json:"records" yaml:"records"`                   // Records the source extracted
	Matched  int            `json:"matched" yaml:"matched"`                   // Dishes the source matched
	ByTier   map[string]int `json:"by_tier" yaml:"by_tier"`                   // Matches per tier, plus "category" for the second pass
	Filled   map[string]int `json:"filled" yaml:"filled"`                     // Filled fields by name
	Unused   []string       `json:"unused,omitempty" yaml:"unused,omitempty"` // Extracted names no dish matched
}

// HasChanges returns true if the run added a dish, filled a field or wrote
// assets.
func (sr *Result) HasChanges() bool {
	if sr.Added > 0 || sr.Images > 0 || sr.AssetsCleared > 0 {
		return true
	}
	for _, s := range sr.SourceResults {
		if s.FilledTotal() > 0 {
			return true
		}
	}
	return false
}

// FilledTotal returns the number of fields the source filled.
func (spr *SourceResult) FilledTotal() int {
	n := 0
	for _, c := range spr.Filled {
		n += c
	}
	return n
}

// Summary returns a human-readable summary of the run.
func (sr *Result) Summary() string {
	var parts []string
	if sr.DryRun {
		parts = append(parts, "(Dry run)")
	}

	filled := 0
	for _, s := range sr.SourceResults {
		filled += s.FilledTotal()
	}

	summary := fmt.Sprintf("%s: %d dishes in %d categories, %d added, %d fields filled",
		sr.Mode, sr.TotalItems, len(sr.Categories), sr.Added, filled)
	if len(parts) > 0 {
		summary += " " + strings.Join(parts, " ")
	}
	return summary
}

// Summary returns a human-readable summary of the source result.
func (spr *SourceResult) Summary() string {
	if spr.Matched == 0 {
		return fmt.Sprintf("%s: %d records, no matches", spr.SourceID, spr.Partials)
	}

	fields := make([]string, 0, len(spr.Filled))
	for f := range spr.Filled {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	var filled []string
	for _, f := range fields {
		filled = append(filled, fmt.Sprintf("%d %s", spr.Filled[f], f))
	}
	if len(filled) == 0 {
		filled = []string{"nothing new"}
	}

	return fmt.Sprintf("%s: %d records, %d matched, filled %s",
		spr.SourceID, spr.Partials, spr.Matched, strings.Join(filled, ", "))
}

// ReconcileToResult converts a reconciliation into a run result.
func ReconcileToResult(mode Mode, rec *reconciler.Result, snap catalogs.Snapshot, dryRun bool, outputPath string) *Result {
	result := &Result{
		Mode:       mode,
		Added:      rec.Metadata.Stats.StubsAdded,
		Skipped:    rec.Metadata.Stats.StubsSkipped,
		Invalid:    rec.Metadata.Stats.StubsInvalid,
		TotalItems: snap.Statistics.TotalItems,
		DryRun:     dryRun,
		OutputPath: outputPath,
		Warnings:   append([]string(nil), rec.Warnings...),
	}

	for _, c := range snap.Menu.Categories {
		result.Categories = append(result.Categories, CategoryResult{Name: c.Name, Count: c.Count})
	}

	for _, s := range rec.Sources {
		sr := &SourceResult{
			SourceID: s.ID,
			Partials: s.Partials,
			Matched:  s.Matched(),
			ByTier:   make(map[string]int),
			Filled:   make(map[string]int),
			Unused:   s.Unused,
		}
		for _, tier := range matcher.Tiers() {
			if n := s.Matches[tier]; n > 0 {
				sr.ByTier[tier.String()] = n
			}
		}
		if s.CategoryMatches > 0 {
			sr.ByTier["category"] = s.CategoryMatches
		}
		for f, n := range s.Filled {
			sr.Filled[f] = n
		}
		result.SourceResults = append(result.SourceResults, sr)
	}

	return result
}
