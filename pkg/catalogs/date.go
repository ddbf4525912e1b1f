package catalogs

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/agentstation/gpumap/pkg/constants"
)

// dateLayouts are tried in order when parsing a release date.
// The layout that matches decides how the date is printed back.
var dateLayouts = []string{
	constants.ReleaseDateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01",
	"2006",
}

// Date is a release date as found in the catalog. Values that look like a
// date are parsed; anything else (such as "Unknown") is kept as raw text.
type Date struct {
	raw    string
	time   time.Time
	layout string
}

// ParseDate builds a Date from catalog text. It never fails: text that is not
// a recognizable date is kept verbatim.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if layout == time.RFC3339 || layout == "2006-01-02 15:04:05" {
			layout = constants.ReleaseDateLayout
		}
		return Date{raw: s, time: t, layout: layout}
	}
	return Date{raw: s}
}

// DateFromTime builds a day-precision Date.
func DateFromTime(t time.Time) Date {
	return Date{
		raw:    t.Format(constants.ReleaseDateLayout),
		time:   t,
		layout: constants.ReleaseDateLayout,
	}
}

// String returns the date as YYYY-MM-DD (or YYYY-MM / YYYY for partial
// dates), or the raw text when it was not a date.
func (d Date) String() string {
	if d.layout != "" {
		return d.time.Format(d.layout)
	}
	return d.raw
}

// Time returns the parsed time and whether the value was a recognizable date.
func (d Date) Time() (time.Time, bool) {
	return d.time, d.layout != ""
}

// IsZero reports whether the date carries no text at all.
func (d Date) IsZero() bool {
	return d.layout == "" && d.raw == ""
}

// MarshalJSON encodes the date as its string form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// MarshalYAML encodes the date as its string form.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}
