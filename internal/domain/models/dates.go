package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used by every record.
const DateLayout = "2006-01-02"

// FormatDate renders t as an ISO calendar date in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO date. A trailing time component starting with 'T'
// is tolerated and ignored; any other suffix is rejected.
func ParseDate(value string) (time.Time, error) {
	if len(value) > len(DateLayout) {
		if value[len(DateLayout)] != 'T' {
			return time.Time{}, fmt.Errorf("unexpected text %q after date", value[len(DateLayout):])
		}
		value = value[:len(DateLayout)]
	}
	return time.Parse(DateLayout, value)
}

// NormalizeDate validates value and returns its calendar date part, so that
// "2026-03-15T08:00:00Z" and "2026-03-15" map to the same key.
func NormalizeDate(value string) (string, error) {
	t, err := ParseDate(strings.TrimSpace(value))
	if err != nil {
		return "", err
	}
	return FormatDate(t), nil
}
