package parse

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts seen in observation feeds and seed files. Some rows
// carry fractional seconds and some do not, so both are tried.
var utcLayouts = []string{
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// UTCTimestamp parses an observation timestamp string such as
// "2023-01-25 18:13:22.47922 UTC". The trailing " UTC" marker is
// optional; the value is always interpreted as UTC.
func UTCTimestamp(s string) (time.Time, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(s), " UTC")

	var lastErr error
	for _, layout := range utcLayouts {
		ts, err := time.ParseInLocation(layout, trimmed, time.UTC)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", s, lastErr)
}
