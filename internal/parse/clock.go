package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a local wall-clock time of day at minute granularity.
type Clock struct {
	Hour   int // 0..24; 24 only as the end-of-day sentinel
	Minute int
}

// ParseClock parses an "HH:MM" 24-hour string. "24:00" is accepted as
// the end-of-day sentinel; time.Parse("15:04", ...) would reject it,
// which is why this is hand-rolled.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return Clock{}, fmt.Errorf("invalid clock value %q: missing ':'", s)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid hour in clock value %q: %w", s, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return Clock{}, fmt.Errorf("invalid minute in clock value %q: %w", s, err)
	}

	if hour < 0 || hour > 24 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("clock value %q out of range", s)
	}
	if hour == 24 && minute != 0 {
		return Clock{}, fmt.Errorf("clock value %q past end-of-day sentinel 24:00", s)
	}

	return Clock{Hour: hour, Minute: minute}, nil
}

// String formats the clock back to "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
