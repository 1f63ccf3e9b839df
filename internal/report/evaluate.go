package report

import (
	"fmt"
	"time"

	"uptime-report-backend/internal/parse"
)

// IsOpen reports whether the schedule has the location open at the
// reference instant.
//
// The instant is converted into the location's zone and compared
// against that local date's interval; both boundaries are inclusive,
// so a location closing at 17:00 is still open at exactly 17:00:00.
// Days absent from an explicit schedule are closed. Intervals that
// wrap past midnight are not supported; such rows simply evaluate as
// an empty or inverted interval.
func IsOpen(schedule WeeklySchedule, zone *time.Location, ref time.Time) (bool, error) {
	local := ref.In(zone)

	hours, ok := schedule.HoursFor(local.Weekday())
	if !ok {
		return false, nil
	}

	open, err := parse.ParseClock(hours.Open)
	if err != nil {
		return false, fmt.Errorf("bad open time for %s: %w", local.Weekday(), err)
	}
	closeAt, err := parse.ParseClock(hours.Close)
	if err != nil {
		return false, fmt.Errorf("bad close time for %s: %w", local.Weekday(), err)
	}

	year, month, day := local.Date()
	// time.Date normalizes hour 24 to 00:00 the next day, which is
	// exactly the end-of-day sentinel's meaning.
	openInstant := time.Date(year, month, day, open.Hour, open.Minute, 0, 0, zone)
	closeInstant := time.Date(year, month, day, closeAt.Hour, closeAt.Minute, 0, 0, zone)

	return !local.Before(openInstant) && !local.After(closeInstant), nil
}
