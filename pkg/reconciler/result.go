package reconciler

import (
	"time"

	"github.com/agentstation/menumap/internal/matcher"
	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/sources"
)

// Result represents the outcome of a reconciliation.
type Result struct {
	// Catalog is the reconciled catalog. The input catalog is never modified.
	Catalog *catalogs.Catalog

	// Added lists the ids assigned to new dishes, in creation order.
	Added []int

	// Sources holds one entry per applied partial set, in application order.
	Sources []SourceStats

	// Metadata
	Metadata ResultMetadata

	// Issues
	Warnings []string
}

// ResultMetadata contains metadata about the reconciliation.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Stats     ResultStatistics
}

// ResultStatistics counts what happened to stubs.
type ResultStatistics struct {
	StubsAdded   int
	StubsSkipped int
	StubsInvalid int
}

// SourceStats counts what one partial set contributed.
type SourceStats struct {
	ID       sources.ID
	Partials int

	// Matches counts matched dishes by the tier that matched them.
	Matches map[matcher.Tier]int

	// CategoryMatches counts dishes matched only by the per-category pass.
	CategoryMatches int

	// Filled counts filled fields by field name.
	Filled map[string]int

	// Unused lists partial names no dish matched.
	Unused []string
}

func newSourceStats(set *sources.Set) SourceStats {
	return SourceStats{
		ID:       set.ID(),
		Partials: set.Len(),
		Matches:  make(map[matcher.Tier]int),
		Filled:   make(map[string]int),
	}
}

// Matched returns the number of dishes the source matched in either pass.
func (s SourceStats) Matched() int {
	n := s.CategoryMatches
	for _, c := range s.Matches {
		n += c
	}
	return n
}

// FilledTotal returns the number of fields the source filled.
func (s SourceStats) FilledTotal() int {
	n := 0
	for _, c := range s.Filled {
		n += c
	}
	return n
}

// HasChanges reports whether the reconciliation added a dish or filled a
// field.
func (r *Result) HasChanges() bool {
	if len(r.Added) > 0 {
		return true
	}
	for _, s := range r.Sources {
		if s.FilledTotal() > 0 {
			return true
		}
	}
	return false
}
