// Package constants provides shared constants used throughout gpumap.
// This includes timeouts, limits, file permissions and catalog layout values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants
const (
	// ImportTimeout bounds the database work of a single import run
	ImportTimeout = 2 * time.Minute

	// ShutdownTimeout is how long the CLI waits for cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)

// FilePermissions is the permission for files gpumap creates (rw-r--r--)
const FilePermissions = 0644

// Limit constants
const (
	// DefaultSearchLimit caps the number of GPUs returned by a name search
	DefaultSearchLimit = 20

	// MaxCatalogGPUs is the maximum number of GPUs accepted from one catalog source
	MaxCatalogGPUs = 50000
)

// Catalog layout constants
const (
	// CatalogFileExtension is the extension of catalog data files
	CatalogFileExtension = ".yaml"

	// EmbeddedCatalogRoot is the directory inside the embedded filesystem holding catalog files
	EmbeddedCatalogRoot = "catalog"

	// ReleaseDateLayout is the canonical string form of a release date
	ReleaseDateLayout = "2006-01-02"
)

// Path constants
const (
	// ConfigFileName is the base name of the optional config file (without extension)
	ConfigFileName = ".gpumap"

	// EnvPrefix prefixes gpumap specific environment variables
	EnvPrefix = "GPUMAP"
)
