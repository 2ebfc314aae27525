package search

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
}

// parseDate accepts the formats produced by the loader and falls back to
// cast for anything else.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if t, err := cast.ToTimeE(value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// compareDates orders by parsed timestamp. Unparseable dates sort as older
// than any parsed date and compare as raw strings among themselves.
func compareDates(a, b string) int {
	ta, okA := parseDate(a)
	tb, okB := parseDate(b)
	switch {
	case okA && okB:
		return ta.Compare(tb)
	case okA:
		return 1
	case okB:
		return -1
	default:
		return strings.Compare(a, b)
	}
}
