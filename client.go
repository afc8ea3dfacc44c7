// Package menumap provides the main entry point for building the restaurant
// menu catalog. It wires the archive decoder, the source extractors, the
// reconciler and the catalog writer into three runs:
//
//   - Rebuild discards the catalog and image assets and recreates both from
//     the photo archive, then enriches every dish from the configured sources.
//   - Import adds dishes for images that are new since the last run.
//   - Enrich fills empty fields of the existing catalog from sources only.
//
// Example usage:
//
//	client, err := menumap.New(
//	    menumap.WithArchive("sapiens photo.zip"),
//	    menumap.WithTranscript("menu.txt"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client.OnDishAdded(func(d catalogs.Dish) {
//	    log.Printf("New dish: %s", d.Name)
//	})
//
//	result, err := client.Rebuild(ctx, sync.WithDryRun(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package menumap

import (
	"fmt"
	"sync"

	"github.com/agentstation/menumap/pkg/archive"
	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Catalog provides copy-on-read access to the catalog.
type Catalog interface {
	// Catalog returns a copy of the last computed catalog, loading the
	// configured catalog file on first use.
	Catalog() (*catalogs.Catalog, error)
}

// Hooks registers callbacks for catalog changes.
type Hooks interface {
	// OnDishAdded registers a callback for dishes added by a saved run
	OnDishAdded(DishAddedHook)

	// OnDishUpdated registers a callback for dishes filled by a saved run
	OnDishUpdated(DishUpdatedHook)
}

// Client builds and maintains the menu catalog.
type Client interface {
	Catalog
	Runner
	Hooks

	// Names lists the file names of an archive that the code page scan
	// corrects. An empty path means the configured archive.
	Names(path string) ([]archive.Correction, error)
}

// client is the internal implementation of the Client interface.
type client struct {
	mu      sync.RWMutex
	config  *config
	catalog *catalogs.Catalog
	hooks   *hooks
}

// New creates a new Client with the given options.
func New(opts ...Option) (Client, error) {
	c := &client{
		config: defaultConfig(),
		hooks:  newHooks(),
	}
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	return c, nil
}

// Catalog returns a copy of the current catalog.
func (c *client) Catalog() (*catalogs.Catalog, error) {
	c.mu.RLock()
	cat := c.catalog
	c.mu.RUnlock()
	if cat != nil {
		return cat.Clone(), nil
	}

	loaded, err := catalogs.Load(c.config.catalogPath)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.catalog == nil {
		c.catalog = loaded
	}
	cat = c.catalog
	c.mu.Unlock()
	return cat.Clone(), nil
}

// Names implements Client.
func (c *client) Names(path string) ([]archive.Correction, error) {
	if path == "" {
		path = c.config.archivePath
	}
	arch, err := archive.Open(path, c.config.archiveOptions()...)
	if err != nil {
		return nil, err
	}
	corrections := arch.Corrections()
	logging.Debug().
		Str("archive", path).
		Int("corrections", len(corrections)).
		Msg("Scanned archive names")
	return corrections, nil
}

// OnDishAdded implements Hooks.
func (c *client) OnDishAdded(fn DishAddedHook) {
	c.hooks.OnDishAdded(fn)
}

// OnDishUpdated implements Hooks.
func (c *client) OnDishUpdated(fn DishUpdatedHook) {
	c.hooks.OnDishUpdated(fn)
}

// commit makes cat the current catalog and fires hooks against the
// previous one.
func (c *client) commit(prev, cat *catalogs.Catalog) {
	c.mu.Lock()
	c.catalog = cat
	c.mu.Unlock()
	c.hooks.triggerCatalogUpdate(prev, cat)
}

// loadExisting returns the saved catalog, or an empty one when the file
// does not exist and missingOK is set.
func (c *client) loadExisting(path string, missingOK bool) (*catalogs.Catalog, error) {
	cat, err := catalogs.Load(path)
	if err == nil {
		return cat, nil
	}
	if missingOK && errors.IsMissingSource(err) {
		logging.Debug().Str("path", path).Msg("No existing catalog found, starting empty")
		return catalogs.New(), nil
	}
	return nil, err
}
