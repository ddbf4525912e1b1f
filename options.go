package gpumap

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/gpumap/pkg/catalogs"
	"github.com/agentstation/gpumap/pkg/errors"
	"github.com/agentstation/gpumap/pkg/export"
)

// config holds the client configuration
type config struct {
	initialCatalog catalogs.Catalog
	catalogPath    string
	exportOptions  []export.Option
}

func defaultConfig() *config {
	return &config{}
}

// Option is a function that configures a Client
type Option func(*config) error

// options applies the given options to the client
func (c *client) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return err
		}
	}
	return nil
}

// WithInitialCatalog configures the catalog to use instead of the embedded one
func WithInitialCatalog(catalog catalogs.Catalog) Option {
	return func(c *config) error {
		if catalog == nil {
			return errors.NewValidationError("catalog", nil, "catalog cannot be nil")
		}
		c.initialCatalog = catalog
		return nil
	}
}

// WithCatalogPath configures a directory of catalog YAML files to load
// instead of the embedded catalog. An empty path keeps the default.
func WithCatalogPath(path string) Option {
	return func(c *config) error {
		c.catalogPath = path
		return nil
	}
}

// WithLogger configures the logger exporters report progress to
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.exportOptions = append(c.exportOptions, export.WithLogger(logger))
		return nil
	}
}
