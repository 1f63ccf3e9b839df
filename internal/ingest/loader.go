package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"uptime-report-backend/config"
	"uptime-report-backend/internal/model"
	"uptime-report-backend/internal/parse"
	"uptime-report-backend/internal/store"
)

// Loader seeds the database from CSV files once at startup. The files
// follow the upstream export formats: local times as "HH:MM:SS", UTC
// timestamps with an optional " UTC" suffix and optional fractional
// seconds, day-of-week 0=Sunday..6=Saturday.
type Loader struct {
	store store.Store
}

// NewLoader creates a CSV seed loader.
func NewLoader(s store.Store) *Loader {
	return &Loader{store: s}
}

// Load ingests every configured seed file. Files left unconfigured are
// skipped.
func (l *Loader) Load(ctx context.Context, cfg *config.SeedConfig) error {
	if cfg.LocationsFile != "" {
		if err := l.loadLocations(ctx, cfg.LocationsFile); err != nil {
			return fmt.Errorf("seeding locations: %w", err)
		}
	}
	if cfg.HoursFile != "" {
		if err := l.loadBusinessHours(ctx, cfg.HoursFile); err != nil {
			return fmt.Errorf("seeding business hours: %w", err)
		}
	}
	if cfg.ObservationsFile != "" {
		if err := l.loadObservations(ctx, cfg.ObservationsFile); err != nil {
			return fmt.Errorf("seeding observations: %w", err)
		}
	}
	return nil
}

func (l *Loader) loadLocations(ctx context.Context, path string) error {
	rows, cols, err := openCSV(path)
	if err != nil {
		return err
	}
	defer rows.close()

	idCol, err := cols.require("store_id", "location_id")
	if err != nil {
		return err
	}
	tzCol, _ := cols.optional("timezone_str", "timezone")

	var locations []model.Location
	for {
		record, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		tz := model.DefaultTimezone
		if tzCol >= 0 && record[tzCol] != "" {
			tz = record[tzCol]
		}
		locations = append(locations, model.Location{
			ID:       record[idCol],
			Timezone: tz,
		})
	}

	log.Printf("Seeding %d locations from %s", len(locations), path)
	return l.store.UpsertLocations(ctx, locations)
}

func (l *Loader) loadBusinessHours(ctx context.Context, path string) error {
	rows, cols, err := openCSV(path)
	if err != nil {
		return err
	}
	defer rows.close()

	idCol, err := cols.require("store_id", "location_id")
	if err != nil {
		return err
	}
	dayCol, err := cols.require("day", "dayOfWeek", "day_of_week")
	if err != nil {
		return err
	}
	openCol, err := cols.require("start_time_local")
	if err != nil {
		return err
	}
	closeCol, err := cols.require("end_time_local")
	if err != nil {
		return err
	}

	var hours []model.BusinessHours
	for {
		record, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		day, err := strconv.Atoi(record[dayCol])
		if err != nil || day < 0 || day > 6 {
			log.Printf("Warning: bad day-of-week %q for location %s; row dropped", record[dayCol], record[idCol])
			continue
		}
		openAt, err := localClock(record[openCol])
		if err != nil {
			log.Printf("Warning: %v for location %s; row dropped", err, record[idCol])
			continue
		}
		closeAt, err := localClock(record[closeCol])
		if err != nil {
			log.Printf("Warning: %v for location %s; row dropped", err, record[idCol])
			continue
		}

		hours = append(hours, model.BusinessHours{
			LocationID: record[idCol],
			DayOfWeek:  day,
			Open:       openAt,
			Close:      closeAt,
		})
	}

	log.Printf("Seeding %d business-hour rows from %s", len(hours), path)
	return l.store.CreateBusinessHours(ctx, hours)
}

func (l *Loader) loadObservations(ctx context.Context, path string) error {
	rows, cols, err := openCSV(path)
	if err != nil {
		return err
	}
	defer rows.close()

	idCol, err := cols.require("store_id", "location_id")
	if err != nil {
		return err
	}
	statusCol, err := cols.require("status")
	if err != nil {
		return err
	}
	tsCol, err := cols.require("timestamp_utc")
	if err != nil {
		return err
	}

	var observations []model.Observation
	for {
		record, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		ts, err := parse.UTCTimestamp(record[tsCol])
		if err != nil {
			log.Printf("Warning: %v for location %s; row dropped", err, record[idCol])
			continue
		}
		observations = append(observations, model.Observation{
			LocationID: record[idCol],
			Timestamp:  ts,
			Status:     record[statusCol],
		})
	}

	log.Printf("Seeding %d observations from %s", len(observations), path)
	return l.store.CreateObservations(ctx, observations)
}

// localClock normalizes an "HH:MM:SS" (or "HH:MM") seed value to the
// stored "HH:MM" form.
func localClock(s string) (string, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 3)
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid local time %q", s)
	}
	c, err := parse.ParseClock(parts[0] + ":" + parts[1])
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// csvRows wraps a CSV file being read row by row.
type csvRows struct {
	f *os.File
	r *csv.Reader
}

func (rows *csvRows) next() ([]string, error) { return rows.r.Read() }
func (rows *csvRows) close()                  { rows.f.Close() }

// columns maps header names to their index.
type columns map[string]int

// require returns the index of the first present name, or an error when
// none of the accepted names exist in the header.
func (c columns) require(names ...string) (int, error) {
	if idx, ok := c.optional(names...); ok {
		return idx, nil
	}
	return -1, fmt.Errorf("missing required column %q", names[0])
}

// optional returns (-1, false) when none of the names are present.
func (c columns) optional(names ...string) (int, bool) {
	for _, name := range names {
		if idx, ok := c[name]; ok {
			return idx, true
		}
	}
	return -1, false
}

// openCSV opens a seed file and consumes its header row.
func openCSV(path string) (*csvRows, columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	cols := make(columns, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return &csvRows{f: f, r: r}, cols, nil
}
