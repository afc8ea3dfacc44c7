// Package reconciler merges dish stubs and partial source records into a
// catalog. New dishes come only from stubs; partials fill fields that are
// still empty on dishes they match. Reconciling the same inputs twice adds
// nothing and changes nothing.
package reconciler

import (
	"context"
	"strings"
	"time"

	"github.com/agentstation/menumap/internal/matcher"
	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/normalize"
	"github.com/agentstation/menumap/pkg/sources"
)

// Reconciler merges stubs and partial sets into a catalog.
type Reconciler interface {
	// Reconcile clones existing (nil means empty), adds every stub whose
	// name is not in the catalog yet, then applies each set in order.
	Reconcile(ctx context.Context, existing *catalogs.Catalog, stubs []catalogs.Dish, sets ...*sources.Set) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	options *options
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{options: options}, nil
}

// Reconcile implements Reconciler.
func (r *reconciler) Reconcile(ctx context.Context, existing *catalogs.Catalog, stubs []catalogs.Dish, sets ...*sources.Set) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	result := &Result{
		Catalog:  existing.Clone(),
		Metadata: ResultMetadata{StartTime: start},
	}

	if err := r.addStubs(ctx, result, stubs); err != nil {
		return nil, err
	}

	for _, set := range sets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if set == nil {
			continue
		}
		stats := r.apply(ctx, result.Catalog, set)
		result.Sources = append(result.Sources, stats)

		logger.Info().
			Str("source", set.ID().String()).
			Int("partials", stats.Partials).
			Int("matched", stats.Matched()).
			Int("filled", stats.FilledTotal()).
			Int("unused", len(stats.Unused)).
			Msg("Applied source")
	}

	result.Metadata.EndTime = time.Now()
	result.Metadata.Duration = result.Metadata.EndTime.Sub(start)

	logger.Debug().
		Int("dishes", result.Catalog.Len()).
		Int("added", result.Metadata.Stats.StubsAdded).
		Int("skipped", result.Metadata.Stats.StubsSkipped).
		Dur("duration", result.Metadata.Duration).
		Msg("Reconciliation complete")
	return result, nil
}

// addStubs appends stubs whose normalized name is new. Ids continue from the
// largest id in the catalog.
func (r *reconciler) addStubs(ctx context.Context, result *Result, stubs []catalogs.Dish) error {
	logger := logging.FromContext(ctx)
	cat := result.Catalog
	stats := &result.Metadata.Stats
	next := cat.NextID()

	for _, stub := range stubs {
		name := normalize.Collapse(stub.Name)
		if normalize.Key(name) == "" {
			stats.StubsInvalid++
			result.Warnings = append(result.Warnings, "stub without a usable name: "+strings.TrimSpace(stub.Name))
			continue
		}
		if cat.Has(name) {
			stats.StubsSkipped++
			continue
		}

		d := stub.Copy()
		d.ID = next
		d.Name = name
		if d.Category == "" {
			d.Category = r.options.classifier.Classify(name)
		}
		if err := cat.Add(d); err != nil {
			return err
		}
		next++
		stats.StubsAdded++
		result.Added = append(result.Added, d.ID)

		logger.Debug().
			Int("id", d.ID).
			Str("dish", d.Name).
			Str("category", d.Category).
			Msg("Added dish")
	}
	return nil
}

// apply runs the catalog pass and then the per-category pass of one set.
func (r *reconciler) apply(ctx context.Context, cat *catalogs.Catalog, set *sources.Set) SourceStats {
	logger := logging.FromContext(ctx)
	stats := newSourceStats(set)

	partials := set.List()
	index := matcher.NewIndex(set.Keys())
	used := make([]bool, len(partials))
	matched := make(map[int]bool)

	merge := func(d *catalogs.Dish, c matcher.Candidate, pass string) {
		used[c.Index] = true
		matched[d.ID] = true
		filled := fill(d, partials[c.Index])
		for _, f := range filled {
			stats.Filled[f]++
		}
		logger.Debug().
			Str("source", set.ID().String()).
			Str("pass", pass).
			Str("dish", d.Name).
			Str("partial", partials[c.Index].Name).
			Str("tier", c.Tier.String()).
			Strs("filled", filled).
			Msg("Matched partial")
	}

	for _, d := range cat.Dishes() {
		c, ok := index.Best(d.Key(), r.options.catalogPass)
		if !ok {
			continue
		}
		stats.Matches[c.Tier]++
		merge(d, c, "catalog")
	}

	// With the default policies the catalog pass already takes every
	// overlap-of-three candidate, so this pass only matches when the catalog
	// pass is tightened.
	if !r.options.skipCategory {
		for _, category := range cat.Categories() {
			for _, d := range cat.InCategory(category) {
				if matched[d.ID] {
					continue
				}
				c, ok := index.Best(d.Key(), r.options.categoryPass)
				if !ok {
					continue
				}
				stats.CategoryMatches++
				merge(d, c, "category")
			}
		}
	}

	for i, p := range partials {
		if !used[i] {
			stats.Unused = append(stats.Unused, p.Name)
		}
	}
	return stats
}
