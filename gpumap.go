// Package gpumap exports GPU model records from a catalog as a sorted JSON
// document of the GPUs that have VRAM information.
//
// Example usage:
//
//	client, err := gpumap.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := client.Export(os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package gpumap

import (
	"fmt"
	"io"
	"sync"

	"github.com/agentstation/gpumap/pkg/catalogs"
	"github.com/agentstation/gpumap/pkg/errors"
	"github.com/agentstation/gpumap/pkg/export"
)

// Client owns a GPU catalog and exports it.
type Client interface {
	// Catalog returns a copy of the current catalog
	Catalog() (catalogs.Catalog, error)

	// Exporter builds an exporter reading from the client's catalog
	Exporter(opts ...export.Option) *export.Exporter

	// Export writes the export document for the catalog to w
	Export(w io.Writer, opts ...export.Option) (export.Summary, error)
}

// client is the internal implementation of the Client interface
type client struct {
	mu      sync.RWMutex
	catalog catalogs.Catalog
	config  *config
}

// New creates a new Client with the given options. By default it loads the
// catalog embedded in the binary. A catalog that cannot be loaded is
// reported as unavailable.
func New(opts ...Option) (Client, error) {
	c := &client{
		config: defaultConfig(),
	}

	if err := c.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	catalog, err := c.loadCatalog()
	if err != nil {
		return nil, errors.NewDependencyError("gpu catalog", err)
	}
	c.catalog = catalog

	return c, nil
}

func (c *client) loadCatalog() (catalogs.Catalog, error) {
	switch {
	case c.config.initialCatalog != nil:
		return c.config.initialCatalog, nil
	case c.config.catalogPath != "":
		return catalogs.NewFromPath(c.config.catalogPath)
	default:
		return catalogs.NewEmbedded()
	}
}

// Catalog returns a copy of the current catalog
func (c *client) Catalog() (catalogs.Catalog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.catalog.Copy()
}

// Exporter builds an exporter over the client's catalog. Options passed to
// New come first, so opts can override them.
func (c *client) Exporter(opts ...export.Option) *export.Exporter {
	c.mu.RLock()
	catalog := c.catalog
	c.mu.RUnlock()

	all := append(append([]export.Option{}, c.config.exportOptions...), opts...)
	return export.New(catalog, all...)
}

// Export writes the export document for the catalog to w.
func (c *client) Export(w io.Writer, opts ...export.Option) (export.Summary, error) {
	return c.Exporter(opts...).Run(w)
}
