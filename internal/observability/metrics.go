// Package observability exposes Prometheus metrics for export runs.
//
// The CLI is a short-lived process, so metrics are written once per run in
// the text exposition format for the node-exporter textfile collector
// instead of being served over HTTP.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/agentstation/gpumap/pkg/errors"
)

// Skip reasons used as the "reason" label.
const (
	ReasonInvalidVRAM = "invalid_vram"
	ReasonFetchError  = "fetch_error"
)

// ExportMetrics holds the metrics of one export run on a private registry.
type ExportMetrics struct {
	registry *prometheus.Registry

	GPUsTotal    prometheus.Gauge
	GPUsExported prometheus.Gauge
	GPUsSkipped  *prometheus.CounterVec
	LastRun      prometheus.Gauge
}

// NewExportMetrics creates and registers the export metrics.
func NewExportMetrics() *ExportMetrics {
	m := &ExportMetrics{
		registry: prometheus.NewRegistry(),
		GPUsTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gpumap_export_gpus_total",
			Help: "GPU model names found in the catalog",
		}),
		GPUsExported: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gpumap_export_gpus_exported",
			Help: "GPU records written to the export document",
		}),
		GPUsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gpumap_export_gpus_skipped_total",
			Help: "GPU records left out of the export, by reason",
		}, []string{"reason"}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gpumap_export_last_run_timestamp_seconds",
			Help: "Unix time of the last finished export",
		}),
	}

	m.registry.MustRegister(m.GPUsTotal, m.GPUsExported, m.GPUsSkipped, m.LastRun)

	// Both reasons are always present in the output, even at zero.
	m.GPUsSkipped.WithLabelValues(ReasonInvalidVRAM)
	m.GPUsSkipped.WithLabelValues(ReasonFetchError)

	return m
}

// ObserveRun records the counts of a finished export.
func (m *ExportMetrics) ObserveRun(total, exported, invalidVRAM, failed int, at time.Time) {
	m.GPUsTotal.Set(float64(total))
	m.GPUsExported.Set(float64(exported))
	m.GPUsSkipped.WithLabelValues(ReasonInvalidVRAM).Add(float64(invalidVRAM))
	m.GPUsSkipped.WithLabelValues(ReasonFetchError).Add(float64(failed))
	m.LastRun.Set(float64(at.Unix()))
}

// Registry returns the registry the metrics are registered on.
func (m *ExportMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format.
// The file is replaced atomically.
func (m *ExportMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
