// Package export provides the export command.
package export

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/gpumap"
	"github.com/agentstation/gpumap/internal/observability"
	gpuexport "github.com/agentstation/gpumap/pkg/export"
)

// AppContext defines the interface that the export command needs from the app.
type AppContext interface {
	Client() (gpumap.Client, error)
	Logger() *zerolog.Logger
}

// NewCommand creates the export command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var metricsFile string

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "core",
		Short:   "Write the GPU export document to stdout",
		Long: `Export writes every catalog GPU with a positive VRAM capacity as a JSON
array sorted by manufacturer and model name.

GPUs whose record cannot be read are reported on stderr and left out.
GPUs without VRAM information are left out silently.`,
		Example: `  gpumap export > gpus.json
  gpumap export --catalog ./my-catalog --metrics-file /var/lib/node_exporter/gpumap.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(app, cmd.OutOrStdout(), metricsFile)
		},
	}

	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics of the run to this file")

	return cmd
}

// Run exports the catalog to w. The catalog failing to load is returned
// before anything is written. When metricsFile is set the run's counts are
// written there afterwards; failing to do so only logs a warning.
func Run(app AppContext, w io.Writer, metricsFile string) error {
	client, err := app.Client()
	if err != nil {
		return err
	}

	logger := app.Logger()
	opts := []gpuexport.Option{gpuexport.WithLogger(logger)}

	var metrics *observability.ExportMetrics
	if metricsFile != "" {
		metrics = observability.NewExportMetrics()
		opts = append(opts, gpuexport.WithMetrics(metrics))
	}

	if _, err := client.Export(w, opts...); err != nil {
		return err
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			logger.Warn().Err(err).Str("path", metricsFile).Msg("Failed to write metrics")
		}
	}
	return nil
}
