package shaper

import "time"

// DisplayLayout is the human-readable timestamp format.
const DisplayLayout = "2006-01-02 15:04:05 UTC"

// isoLayouts are the ISO-8601 forms accepted by ParseTimestamp. A trailing Z
// is matched by the Z07:00 element; fractional seconds are accepted by
// time.Parse after any seconds field.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 string. Values without an offset are
// taken as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders an ISO-8601 string as "YYYY-MM-DD HH:MM:SS UTC".
// Input that cannot be parsed is returned unchanged.
func FormatTimestamp(s string) string {
	t, ok := ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.UTC().Format(DisplayLayout)
}
