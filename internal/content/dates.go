package content

import (
	"fmt"
	"strings"
	"time"
)

const dateOnlyLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateOnlyLayout,
}

func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", raw)
}

// formatDate writes dates without a time of day in the short form. Other
// times keep their offset and fractional seconds.
func formatDate(t time.Time) string {
	if t.Location() == time.UTC && t.Equal(startOfDay(t)) {
		return t.Format(dateOnlyLayout)
	}
	return t.Format(time.RFC3339Nano)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
