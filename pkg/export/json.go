package export

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/agentstation/gpumap/pkg/errors"
)

// Write encodes records as a JSON array indented by two spaces and followed
// by a newline. A nil slice is written as [].
func Write(w io.Writer, records []Record) error {
	if records == nil {
		records = []Record{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return errors.WrapIO("write", "export", err)
	}
	return nil
}

// Read decodes an export document. Lines before the first line that is only
// "[" are ignored, so a file that captured diagnostics ahead of the document
// still reads.
func Read(r io.Reader) ([]Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "export", err)
	}

	var records []Record
	if err := json.Unmarshal(documentStart(data), &records); err != nil {
		return nil, errors.WrapParse("json", "", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// documentStart returns data from the first line that opens the array.
func documentStart(data []byte) []byte {
	offset := 0
	for offset < len(data) {
		end := bytes.IndexByte(data[offset:], '\n')
		line := data[offset:]
		if end >= 0 {
			line = data[offset : offset+end]
		}
		if string(bytes.TrimSpace(line)) == "[" {
			return data[offset:]
		}
		if end < 0 {
			break
		}
		offset += end + 1
	}
	return data
}
