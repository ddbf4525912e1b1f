package catalogs

import (
	"io/fs"
	"os"

	"github.com/agentstation/gpumap/internal/embedded"
	"github.com/agentstation/gpumap/pkg/constants"
)

// catalogOptions contains the options for the catalog.
type catalogOptions struct {
	readFS fs.FS  // For reading catalog files
	name   string // Describes the source in errors and logs
}

// apply applies the given options to the catalog options.
func (c *catalogOptions) apply(opts ...Option) *catalogOptions {
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// catalogDefaults returns the default options for a catalog.
func catalogDefaults() *catalogOptions {
	return &catalogOptions{
		name: "memory",
	}
}

// Option configures a catalog.
type Option func(*catalogOptions)

// WithFS configures the catalog to read YAML files from a custom fs.FS.
func WithFS(fsys fs.FS) Option {
	return func(c *catalogOptions) {
		c.readFS = fsys
		c.name = "fs"
	}
}

// WithPath configures the catalog to read YAML files below a directory.
// This creates an os.DirFS under the hood.
func WithPath(path string) Option {
	return func(c *catalogOptions) {
		c.readFS = os.DirFS(path)
		c.name = path
	}
}

// WithEmbedded configures the catalog to use the embedded GPU data.
func WithEmbedded() Option {
	return func(c *catalogOptions) {
		catalogFS, err := fs.Sub(embedded.FS, constants.EmbeddedCatalogRoot)
		if err != nil {
			c.readFS = embedded.FS
		} else {
			c.readFS = catalogFS
		}
		c.name = "embedded"
	}
}
