package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGigabytesMarshalJSON(t *testing.T) {
	tests := []struct {
		value Gigabytes
		want  string
	}{
		{24, "24.0"},
		{0.5, "0.5"},
		{6.5, "6.5"},
		{192, "192.0"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			data, err := tt.value.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestWriteDoesNotEscapeHTML(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Write(&out, []Record{{ModelName: "Radeon <Pro> & Co", VRAMCapacityGB: 8}}))
	assert.Contains(t, out.String(), `"modelName": "Radeon <Pro> & Co"`)
}

func TestReadWrittenDocument(t *testing.T) {
	year := 2022
	records := []Record{
		{ModelName: "RX 7900 XTX", Manufacturer: "AMD", VRAMCapacityGB: 24, Architecture: "RDNA 3", ReleaseDate: "2022-12-13", ReleaseYear: &year},
		{ModelName: "Arc A380", Manufacturer: "Intel", VRAMCapacityGB: 6},
	}

	var out bytes.Buffer
	require.NoError(t, Write(&out, records))

	got, err := Read(&out)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestReadSkipsLeadingLogLines(t *testing.T) {
	doc := "Processing 2 GPUs...\nExported 1 GPUs with VRAM information\n[\n  {\"modelName\": \"A1\", \"vramCapacityGB\": 16.0}\n]\n"

	records, err := Read(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0].ModelName)
	assert.Equal(t, Gigabytes(16), records[0].VRAMCapacityGB)
}

func TestReadCompactAndEmpty(t *testing.T) {
	records, err := Read(strings.NewReader(`[{"modelName":"A1","vramCapacityGB":2}]`))
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = Read(strings.NewReader("[]\n"))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestReadInvalidDocument(t *testing.T) {
	_, err := Read(strings.NewReader("Processing 2 GPUs...\nnot json"))
	assert.Error(t, err)
}
