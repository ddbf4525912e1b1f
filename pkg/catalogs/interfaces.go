package catalogs

// Reader provides read-only access to catalog data. It is all the exporter
// needs: the list of keys and a lookup by key.
type Reader interface {
	// Names lists every model name in the catalog.
	Names() []string

	// GPU returns the record for a model name.
	GPU(name string) (*GPU, error)

	// Len returns the number of model names.
	Len() int
}

// Writer provides write operations for catalog data.
type Writer interface {
	// SetGPU inserts or replaces a GPU keyed by its name.
	SetGPU(gpu GPU) error

	// DeleteGPU removes a GPU by model name.
	DeleteGPU(name string) error
}

// Copier provides catalog copying capabilities.
type Copier interface {
	Copy() (Catalog, error)
}

// Catalog is the complete interface combining all catalog capabilities.
type Catalog interface {
	Reader
	Writer
	Copier

	// GPUs returns the underlying collection for search and iteration.
	GPUs() *GPUs
}
