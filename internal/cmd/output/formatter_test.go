package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/gpumap/pkg/export"
)

func testRecords() []export.Record {
	year := 2022
	return []export.Record{
		{ModelName: "RX 7900 XTX", Manufacturer: "AMD", VRAMCapacityGB: 24, Architecture: "RDNA 3", ReleaseDate: "2022-12-13", ReleaseYear: &year},
		{ModelName: "Mystery", VRAMCapacityGB: 2.5},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"", "", false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestFormatRecordsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatRecords(&buf, testRecords(), FormatJSON))
	assert.Contains(t, buf.String(), `"vramCapacityGB": 24.0`)
	assert.Contains(t, buf.String(), `"releaseYear": 2022`)
}

func TestFormatRecordsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatRecords(&buf, testRecords(), FormatYAML))
	assert.Contains(t, buf.String(), "modelName: RX 7900 XTX")
	assert.Contains(t, buf.String(), "releaseYear: 2022")
}

func TestFormatRecordsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatRecords(&buf, testRecords(), FormatTable))

	out := buf.String()
	assert.Contains(t, out, "RX 7900 XTX")
	assert.Contains(t, out, "24 GB")
	assert.Contains(t, out, "2.5 GB")
}

func TestFormatRecordsEmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatRecords(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestTableFormatterReflection(t *testing.T) {
	type row struct {
		Name  string  `json:"model_name"`
		Notes *string `json:"notes,omitempty"`
	}

	var buf bytes.Buffer
	require.NoError(t, (&TableFormatter{}).Format(&buf, []row{{Name: "Arc A770"}}))
	out := buf.String()
	assert.Contains(t, out, "Arc A770")
	assert.Contains(t, out, "-")
}
