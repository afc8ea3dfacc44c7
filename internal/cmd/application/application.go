// Package application provides the application interface for menumap commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            catalog, err := app.Catalog()
//	            if err != nil {
//	                return err
//	            }
//	            // ... use catalog
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    CatalogFunc: func() (*catalogs.Catalog, error) {
//	        return testCatalog, nil
//	    },
//	}
//	cmd := stats.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/menumap"
	"github.com/agentstation/menumap/pkg/catalogs"
)

// Application provides the application interface that commands need.
// The App struct from cmd/menumap/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Catalog returns a copy of the current catalog from the default client.
	Catalog() (*catalogs.Catalog, error)

	// Menumap returns the client with optional configuration.
	// When called without options, returns the default cached instance.
	// When called with options, creates a new instance layered on the
	// configured options (no caching).
	Menumap(opts ...menumap.Option) (menumap.Client, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Quiet reports whether console summaries should be suppressed.
	Quiet() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
