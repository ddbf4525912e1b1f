package output

import (
	"io"
	"strconv"

	"github.com/agentstation/gpumap/pkg/export"
)

// RecordsToTableData converts exported GPU records to table format.
func RecordsToTableData(records []export.Record) Data {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			record.ModelName,
			orDash(record.Manufacturer),
			strconv.FormatFloat(float64(record.VRAMCapacityGB), 'f', -1, 64) + " GB",
			orDash(record.Architecture),
			orDash(record.ReleaseDate),
		})
	}

	return Data{
		Headers:         []string{"Model", "Manufacturer", "VRAM", "Architecture", "Released"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignLeft},
	}
}

// FormatRecords writes records in the given format. Table output gets the
// GPU specific columns; json and yaml print the records as exported.
func FormatRecords(w io.Writer, records []export.Record, format Format) error {
	if records == nil {
		records = []export.Record{}
	}

	formatter := NewFormatter(format)
	switch format {
	case FormatJSON, FormatYAML:
		return formatter.Format(w, records)
	default:
		return formatter.Format(w, RecordsToTableData(records))
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
