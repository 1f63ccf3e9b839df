package report

import (
	"time"

	"uptime-report-backend/internal/model"
)

// DayHours is one local open interval, "HH:MM" formatted. Close may be
// the "24:00" end-of-day sentinel.
type DayHours struct {
	Open  string
	Close string
}

// WeeklySchedule is a location's resolved operating hours.
//
// Default marks the materialized always-open schedule used when a
// location stores no intervals at all. A non-default schedule contains
// exactly the stored days; days absent from Days are closed. There is
// no per-day fallback: a location with rows for three days is open on
// those three days only.
type WeeklySchedule struct {
	Default bool
	Days    map[time.Weekday]DayHours
}

// allDay is the interval materialized for every day of the default
// schedule.
var allDay = DayHours{Open: "00:00", Close: "24:00"}

// DefaultSchedule returns the always-open schedule: all seven days,
// 00:00-24:00.
func DefaultSchedule() WeeklySchedule {
	days := make(map[time.Weekday]DayHours, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days[d] = allDay
	}
	return WeeklySchedule{Default: true, Days: days}
}

// ResolveSchedule builds a location's weekly schedule from its stored
// interval rows. Zero rows yields the full default schedule; otherwise
// exactly the stored days appear. When a day carries more than one row
// the last one wins (rows hold zero-or-one interval per day in
// practice).
func ResolveSchedule(rows []model.BusinessHours) WeeklySchedule {
	if len(rows) == 0 {
		return DefaultSchedule()
	}

	days := make(map[time.Weekday]DayHours, len(rows))
	for _, row := range rows {
		days[time.Weekday(row.DayOfWeek)] = DayHours{Open: row.Open, Close: row.Close}
	}
	return WeeklySchedule{Days: days}
}

// HoursFor returns the open interval for the given day, if any.
func (s WeeklySchedule) HoursFor(day time.Weekday) (DayHours, bool) {
	hours, ok := s.Days[day]
	return hours, ok
}
