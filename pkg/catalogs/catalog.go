// Package catalogs provides the GPU catalog: a read-mostly collection of GPU
// model records keyed by model name.
//
// The default catalog is compiled into the binary from YAML files. The same
// layout can be loaded from a directory or any fs.FS, and an empty in-memory
// catalog is available for tests and programmatic use.
//
// Records are decoded lazily. A catalog file that is not valid YAML fails the
// load, but an entry whose fields have the wrong types only fails when that
// entry is fetched, so one bad record never hides the rest of the catalog.
//
// Example usage:
//
//	catalog, err := catalogs.NewEmbedded()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, name := range catalog.Names() {
//	    gpu, err := catalog.GPU(name)
//	    if err != nil {
//	        continue
//	    }
//	    fmt.Println(gpu.Name)
//	}
package catalogs

import (
	"io/fs"
	"os"

	"github.com/agentstation/gpumap/pkg/errors"
)

// Compile-time interface checks.
var (
	_ Catalog = (*catalog)(nil)
	_ Reader  = (*catalog)(nil)
	_ Writer  = (*catalog)(nil)
)

// catalog is the single concrete implementation of the Catalog interface.
// It is a memory catalog when readFS is nil and is loaded from readFS otherwise
// (embed.FS for the embedded catalog, os.DirFS for a directory).
type catalog struct {
	options *catalogOptions
	gpus    *GPUs
}

// New creates a new catalog with the given options and loads it when a
// filesystem was configured.
//
//	New(WithEmbedded())    // embedded catalog
//	New(WithPath("./gpus")) // directory catalog
func New(opt Option, opts ...Option) (Catalog, error) {
	cat := &catalog{
		gpus:    NewGPUs(),
		options: catalogDefaults().apply(append([]Option{opt}, opts...)...),
	}

	if cat.options.readFS != nil {
		if err := cat.Load(); err != nil {
			return nil, errors.WrapResource("load", "catalog", cat.options.name, err)
		}
	}

	return cat, nil
}

// NewEmbedded creates a catalog backed by the GPU data compiled into the binary.
// This is the default catalog.
func NewEmbedded() (Catalog, error) {
	return New(WithEmbedded())
}

// NewFromPath creates a catalog backed by YAML files on disk.
//
// Example:
//
//	catalog, err := NewFromPath("./internal/embedded/catalog")
func NewFromPath(path string) (Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.WrapIO("stat", path, err)
	}
	if !info.IsDir() {
		return nil, errors.NewIOError("open", path, errors.New("catalog path is not a directory"))
	}
	return New(WithPath(path))
}

// NewFromFS creates a catalog from the YAML files below root in fsys.
func NewFromFS(fsys fs.FS, root string) (Catalog, error) {
	subFS, err := fs.Sub(fsys, root)
	if err != nil {
		return nil, errors.WrapResource("create", "sub filesystem", root, err)
	}
	return New(WithFS(subFS))
}

// NewEmpty creates an in-memory empty catalog.
//
// Example:
//
//	catalog := NewEmpty()
//	_ = catalog.SetGPU(GPU{Name: "RTX 4090", MemorySizeGB: Float(24)})
func NewEmpty() Catalog {
	return &catalog{
		gpus:    NewGPUs(),
		options: catalogDefaults(),
	}
}

// GPUs returns the underlying collection.
func (cat *catalog) GPUs() *GPUs {
	return cat.gpus
}

// Names returns every model name in the catalog in ascending order.
func (cat *catalog) Names() []string {
	return cat.gpus.Names()
}

// GPU returns the record for name. It fails with a NotFoundError for unknown
// names and with a ParseError when the stored entry cannot be decoded.
func (cat *catalog) GPU(name string) (*GPU, error) {
	return cat.gpus.Get(name)
}

// Len returns the number of model names in the catalog.
func (cat *catalog) Len() int {
	return cat.gpus.Len()
}

// SetGPU sets a GPU (upsert).
func (cat *catalog) SetGPU(gpu GPU) error {
	return cat.gpus.Set(&gpu)
}

// DeleteGPU deletes a GPU by model name.
func (cat *catalog) DeleteGPU(name string) error {
	return cat.gpus.Delete(name)
}

// Copy creates a copy of the catalog sharing no mutable state with the original.
func (cat *catalog) Copy() (Catalog, error) {
	options := *cat.options
	return &catalog{
		gpus:    cat.gpus.clone(),
		options: &options,
	}, nil
}
