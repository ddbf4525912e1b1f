// Package list provides the list command.
package list

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentstation/gpumap"
	"github.com/agentstation/gpumap/internal/cmd/output"
	gpuexport "github.com/agentstation/gpumap/pkg/export"
)

// AppContext defines the interface that the list command needs from the app.
type AppContext interface {
	Client() (gpumap.Client, error)
	Logger() *zerolog.Logger
}

// Filter selects records to list.
type Filter struct {
	Search       string // case-insensitive substring of the model name
	Manufacturer string // case-insensitive exact manufacturer
	Limit        int    // zero or less lists everything

	names map[string]struct{} // catalog search matches; nil when Search is empty
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app AppContext) *cobra.Command {
	var (
		filter Filter
		format string
	)

	cmd := &cobra.Command{
		Use:     "list",
		GroupID: "core",
		Short:   "List GPUs with VRAM information",
		Long: `List shows the GPUs that an export would contain, in export order.

Output defaults to a table on terminals and JSON otherwise.`,
		Example: `  gpumap list                              # All exported GPUs
  gpumap list --search rtx --limit 5       # Search by model name
  gpumap list --manufacturer AMD -o yaml   # One manufacturer as YAML`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			filter, err := resolveSearch(client, filter)
			if err != nil {
				return err
			}

			// Only warnings: progress lines would clutter a listing.
			logger := app.Logger().Level(zerolog.WarnLevel)
			records, _ := client.Exporter(gpuexport.WithLogger(&logger)).Collect()

			return output.FormatRecords(cmd.OutOrStdout(), Apply(records, filter), output.DetectFormat(string(f)))
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "s", "", "filter by model name")
	cmd.Flags().StringVarP(&filter.Manufacturer, "manufacturer", "m", "", "filter by manufacturer")
	cmd.Flags().IntVarP(&filter.Limit, "limit", "l", 0, "maximum number of GPUs to list")
	cmd.Flags().StringVarP(&format, "output", "o", "", "output format: table, json, yaml")

	return cmd
}

// resolveSearch runs the catalog name search for filter.Search and records
// the matching model names on the filter.
func resolveSearch(client gpumap.Client, filter Filter) (Filter, error) {
	if strings.TrimSpace(filter.Search) == "" {
		return filter, nil
	}

	catalog, err := client.Catalog()
	if err != nil {
		return filter, err
	}

	filter.names = make(map[string]struct{})
	for _, gpu := range catalog.GPUs().Search(filter.Search, catalog.Len()) {
		filter.names[gpu.Name] = struct{}{}
	}
	return filter, nil
}

// Apply returns the records matching filter, keeping their order.
func Apply(records []gpuexport.Record, filter Filter) []gpuexport.Record {
	manufacturer := strings.TrimSpace(filter.Manufacturer)

	matched := make([]gpuexport.Record, 0, len(records))
	for _, record := range records {
		if filter.names != nil {
			if _, ok := filter.names[record.ModelName]; !ok {
				continue
			}
		}
		if manufacturer != "" && !strings.EqualFold(record.Manufacturer, manufacturer) {
			continue
		}
		matched = append(matched, record)
		if filter.Limit > 0 && len(matched) == filter.Limit {
			break
		}
	}
	return matched
}
