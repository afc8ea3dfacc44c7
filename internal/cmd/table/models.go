// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"sort"
	"strconv"
	"strings"

	"github.com/agentstation/menumap/internal/cmd/emoji"
	"github.com/agentstation/menumap/pkg/archive"
	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/sync"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// CategoryStats summarizes one category of a catalog.
type CategoryStats struct {
	Name      string `json:"name" yaml:"name"`
	Dishes    int    `json:"dishes" yaml:"dishes"`
	Described int    `json:"described" yaml:"described"`
	Priced    int    `json:"priced" yaml:"priced"`
}

// Stats computes per-category statistics in snapshot order.
func Stats(cat *catalogs.Catalog, order catalogs.Ordering) []CategoryStats {
	snap := cat.Snapshot(order)
	out := make([]CategoryStats, 0, len(snap.Menu.Categories))
	for _, c := range snap.Menu.Categories {
		s := CategoryStats{Name: c.Name, Dishes: c.Count}
		for _, d := range c.Items {
			described, _, _, priced := d.Filled()
			if described {
				s.Described++
			}
			if priced {
				s.Priced++
			}
		}
		out = append(out, s)
	}
	return out
}

// StatsToTableData converts category statistics to table format with a
// trailing total row.
func StatsToTableData(stats []CategoryStats) Data {
	rows := make([][]string, 0, len(stats)+1)
	var total CategoryStats
	for _, s := range stats {
		rows = append(rows, []string{
			s.Name,
			strconv.Itoa(s.Dishes),
			strconv.Itoa(s.Described),
			strconv.Itoa(s.Priced),
		})
		total.Dishes += s.Dishes
		total.Described += s.Described
		total.Priced += s.Priced
	}
	rows = append(rows, []string{
		"Total",
		strconv.Itoa(total.Dishes),
		strconv.Itoa(total.Described),
		strconv.Itoa(total.Priced),
	})

	return Data{
		Headers:         []string{"Category", "Dishes", "Described", "Priced"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignRight},
	}
}

// CategoriesToTableData converts run category counts to table format.
func CategoriesToTableData(categories []sync.CategoryResult) Data {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{c.Name, strconv.Itoa(c.Count)})
	}
	return Data{
		Headers:         []string{"Category", "Dishes"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

// SourcesToTableData converts per-source run results to table format.
func SourcesToTableData(results []*sync.SourceResult) Data {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := emoji.Success
		if r.Matched == 0 {
			status = emoji.Warning
		}
		rows = append(rows, []string{
			status + " " + r.SourceID.String(),
			strconv.Itoa(r.Partials),
			strconv.Itoa(r.Matched),
			FormatCounts(r.ByTier),
			FormatCounts(r.Filled),
			strconv.Itoa(len(r.Unused)),
		})
	}
	return Data{
		Headers:         []string{"Source", "Records", "Matched", "Tiers", "Filled", "Unused"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignRight, AlignLeft, AlignLeft, AlignRight},
	}
}

// CorrectionsToTableData converts archive name corrections to table format.
func CorrectionsToTableData(corrections []archive.Correction) Data {
	rows := make([][]string, 0, len(corrections))
	for _, c := range corrections {
		rows = append(rows, []string{c.Legacy, c.Regional})
	}
	return Data{
		Headers: []string{"Legacy Name", "Corrected Name"},
		Rows:    rows,
	}
}

// FormatCounts renders a count map as "key=n" pairs sorted by key.
func FormatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.Itoa(counts[k]))
	}
	return strings.Join(parts, " ")
}
