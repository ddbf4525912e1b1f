package export

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Record is one GPU in an export document.
type Record struct {
	ModelName      string    `json:"modelName" yaml:"modelName"`
	Manufacturer   string    `json:"manufacturer" yaml:"manufacturer"`
	VRAMCapacityGB Gigabytes `json:"vramCapacityGB" yaml:"vramCapacityGB"`
	Architecture   string    `json:"architecture" yaml:"architecture"`
	ReleaseDate    string    `json:"releaseDate" yaml:"releaseDate"`
	ReleaseYear    *int      `json:"releaseYear,omitempty" yaml:"releaseYear,omitempty"`
}

// Gigabytes is a memory capacity. It always encodes as a JSON floating point
// number, so 24 is written as 24.0.
type Gigabytes float64

// MarshalJSON implements json.Marshaler.
func (g Gigabytes) MarshalJSON() ([]byte, error) {
	f := float64(g)
	if f == math.Trunc(f) && math.Abs(f) < 1e16 {
		return []byte(strconv.FormatFloat(f, 'f', 1, 64)), nil
	}
	return json.Marshal(f)
}

// releaseYear returns the year in the first four characters of a release
// date, or nil when they are not an integer.
func releaseYear(releaseDate string) *int {
	runes := []rune(releaseDate)
	if len(runes) < 4 {
		return nil
	}
	year, err := strconv.Atoi(strings.TrimSpace(string(runes[:4])))
	if err != nil {
		return nil
	}
	return &year
}
