// Package export turns the GPU catalog into a sorted JSON document of GPUs
// that have VRAM information.
//
// Every catalog record is transformed on its own. A record that cannot be
// read is logged and left out, and a record without a positive VRAM capacity
// is left out silently. Neither stops the export.
//
// Example usage:
//
//	catalog, err := catalogs.NewEmbedded()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	exporter := export.New(catalog)
//	if _, err := exporter.Run(os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
package export

import (
	"io"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/gpumap/internal/observability"
	"github.com/agentstation/gpumap/pkg/catalogs"
	"github.com/agentstation/gpumap/pkg/errors"
	"github.com/agentstation/gpumap/pkg/logging"
)

// Summary counts the outcome of one export pass.
type Summary struct {
	Total    int // model names in the catalog
	Exported int
	Skipped  int // no positive VRAM capacity
	Failed   int // record could not be read
}

// status is the outcome of transforming one catalog record.
type status int

const (
	statusExported status = iota
	statusSkipped
	statusFailed
)

// result is the per-record outcome of a pass.
type result struct {
	name   string
	status status
	record Record
	err    error
}

// Exporter builds export documents from a catalog.
type Exporter struct {
	catalog catalogs.Reader
	logger  *zerolog.Logger
	metrics *observability.ExportMetrics
	now     func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger used for progress and warnings.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMetrics records the counts of each pass in m.
func WithMetrics(m *observability.ExportMetrics) Option {
	return func(e *Exporter) {
		e.metrics = m
	}
}

// New creates an Exporter reading from catalog.
func New(catalog catalogs.Reader, opts ...Option) *Exporter {
	e := &Exporter{
		catalog: catalog,
		logger:  logging.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run exports the catalog and writes the JSON document to w. The document is
// written once, after the whole catalog was processed. Only a write error is
// returned.
func (e *Exporter) Run(w io.Writer) (Summary, error) {
	records, summary := e.Collect()
	if err := Write(w, records); err != nil {
		return summary, err
	}
	return summary, nil
}

// Collect processes every catalog record and returns the exported records
// sorted by manufacturer and model name.
func (e *Exporter) Collect() ([]Record, Summary) {
	names := e.catalog.Names()
	e.logger.Info().Int("count", len(names)).Msgf("Processing %d GPUs...", len(names))

	summary := Summary{Total: len(names)}
	records := make([]Record, 0, len(names))

	for _, name := range names {
		res := e.process(name)
		switch res.status {
		case statusFailed:
			summary.Failed++
			e.logger.Warn().Str("gpu", name).Err(res.err).Msg("Failed to process GPU")
		case statusSkipped:
			summary.Skipped++
			e.logger.Debug().Str("gpu", name).Msg("Skipping GPU without VRAM information")
		case statusExported:
			summary.Exported++
			records = append(records, res.record)
		}
	}

	SortRecords(records)

	e.logger.Info().Int("count", len(records)).Msgf("Exported %d GPUs with VRAM information", len(records))

	if e.metrics != nil {
		e.metrics.ObserveRun(summary.Total, summary.Exported, summary.Skipped, summary.Failed, e.now())
	}

	return records, summary
}

// process transforms the catalog record stored under name.
func (e *Exporter) process(name string) result {
	gpu, err := e.catalog.GPU(name)
	if err != nil {
		return result{name: name, status: statusFailed, err: err}
	}
	if gpu == nil {
		return result{name: name, status: statusFailed, err: errors.NewNotFoundError("gpu", name)}
	}

	record, ok := toRecord(name, gpu)
	if !ok {
		return result{name: name, status: statusSkipped}
	}
	return result{name: name, status: statusExported, record: record}
}

// toRecord maps a catalog GPU to an export record. It reports false when the
// GPU has no positive, finite VRAM capacity.
func toRecord(name string, gpu *catalogs.GPU) (Record, bool) {
	if gpu.MemorySizeGB == nil {
		return Record{}, false
	}
	vram := *gpu.MemorySizeGB
	if !(vram > 0) || math.IsInf(vram, 1) {
		return Record{}, false
	}

	record := Record{
		ModelName:      name,
		VRAMCapacityGB: Gigabytes(vram),
	}
	if gpu.Manufacturer != nil {
		record.Manufacturer = *gpu.Manufacturer
	}
	if gpu.Architecture != nil {
		record.Architecture = *gpu.Architecture
	}
	if gpu.ReleaseDate != nil {
		record.ReleaseDate = gpu.ReleaseDate.String()
	}
	if record.ReleaseDate != "" {
		record.ReleaseYear = releaseYear(record.ReleaseDate)
	}
	return record, true
}

// SortRecords sorts records by manufacturer, then model name.
func SortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Manufacturer != records[j].Manufacturer {
			return records[i].Manufacturer < records[j].Manufacturer
		}
		return records[i].ModelName < records[j].ModelName
	})
}
