// Package app provides the application context and dependency management
// for the menumap CLI. It centralizes configuration, logging and the
// menumap client so commands receive their dependencies through the
// application interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/menumap"
	"github.com/agentstation/menumap/internal/cmd/application"
	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/errors"
)

// Ensure App implements application.Application at compile time.
var _ application.Application = (*App)(nil)

// App represents the menumap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Menumap client (lazy-initialized, singleton)
	mu     sync.RWMutex
	client menumap.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment and the
// default config file; functional options can override it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Quiet reports whether console summaries are suppressed.
func (a *App) Quiet() bool {
	return a.config.Quiet
}

// Menumap returns the client. Without options it returns the default
// instance, creating it lazily; with options it returns a new client that
// applies them after the configured ones.
func (a *App) Menumap(opts ...menumap.Option) (menumap.Client, error) {
	if len(opts) > 0 {
		client, err := menumap.New(append(a.clientOptions(), opts...)...)
		if err != nil {
			return nil, errors.WrapResource("create", "menumap", "with custom options", err)
		}
		return client, nil
	}

	a.mu.RLock()
	if a.client != nil {
		client := a.client
		a.mu.RUnlock()
		return client, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	client, err := menumap.New(a.clientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "menumap", "", err)
	}

	a.client = client
	return client, nil
}

// Catalog returns a copy of the current catalog from the default client.
func (a *App) Catalog() (*catalogs.Catalog, error) {
	client, err := a.Menumap()
	if err != nil {
		return nil, err
	}

	cat, err := client.Catalog()
	if err != nil {
		return nil, errors.WrapResource("get", "catalog", a.config.Catalog, err)
	}

	return cat, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	a.client = nil
	a.mu.Unlock()
	return nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []menumap.Option {
	c := a.config
	opts := []menumap.Option{
		menumap.WithArchive(c.Archive),
		menumap.WithMarkup(c.Markup),
		menumap.WithTranscript(c.Transcript),
		menumap.WithPrices(c.Prices),
		menumap.WithEncodings(c.LegacyEncoding, c.RegionalEncoding),
		menumap.WithMatching(c.PrefixLength, c.CatalogMinOverlap, c.CategoryMinOverlap),
	}

	if c.MarkupMember != "" {
		opts = append(opts, menumap.WithMarkupMember(c.MarkupMember))
	}
	if c.Catalog != "" {
		opts = append(opts, menumap.WithCatalogPath(c.Catalog))
	}
	if c.Assets != "" {
		opts = append(opts, menumap.WithAssetsDir(c.Assets))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom menumap client (useful for testing).
func WithClient(client menumap.Client) Option {
	return func(a *App) error {
		a.client = client
		return nil
	}
}
