// Package app provides the application context and dependency management
// for the gpumap CLI. Configuration, logging and the gpumap client are
// built here and handed to commands through small interfaces.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/gpumap"
	"github.com/agentstation/gpumap/pkg/catalogs"
	"github.com/agentstation/gpumap/pkg/errors"
)

// App represents the gpumap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// stdin and stdout override the process streams when set
	stdin  io.Reader
	stdout io.Writer

	// loggerFixed keeps a logger set through WithLogger across flag parsing
	loggerFixed bool

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client gpumap.Client
}

// New creates a new App instance with the given version information.
// Configuration is loaded from .env files, the environment and the config
// file, and can be replaced with functional options.
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

// DatabaseURL returns the configured import database.
func (a *App) DatabaseURL() string {
	return a.config.DatabaseURL
}

// Client returns the gpumap client, loading the catalog on first use.
// A catalog that cannot be loaded is returned as an error every time.
func (a *App) Client() (gpumap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := gpumap.New(a.clientOptions()...)
	if err != nil {
		return nil, err
	}

	a.client = c
	return c, nil
}

// Catalog returns a copy of the client's catalog.
func (a *App) Catalog() (catalogs.Catalog, error) {
	c, err := a.Client()
	if err != nil {
		return nil, err
	}

	catalog, err := c.Catalog()
	if err != nil {
		return nil, errors.WrapResource("get", "catalog", "", err)
	}
	return catalog, nil
}

// Shutdown releases application resources.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	a.client = nil
	a.mu.Unlock()
	return nil
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []gpumap.Option {
	opts := []gpumap.Option{gpumap.WithLogger(a.logger)}
	if a.config.CatalogPath != "" {
		opts = append(opts, gpumap.WithCatalogPath(a.config.CatalogPath))
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
		a.loggerFixed = true
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c gpumap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

// WithIO sets the streams commands read documents from and write output to.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) error {
		a.stdin = in
		a.stdout = out
		return nil
	}
}
