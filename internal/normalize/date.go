package normalize

import (
	"strings"
	"time"
)

// ParseDate attempts each configured layout in order and returns the
// first match. Unparseable or empty input returns a nil date; the
// pipeline never drops a row over a bad date.
func ParseDate(raw string, layouts []string) (*time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t, true
		}
	}
	return nil, false
}
