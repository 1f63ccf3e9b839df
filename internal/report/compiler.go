package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"uptime-report-backend/internal/store"
)

// reportDayOrder fixes the artifact's day-column order.
var reportDayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Record is one report row for one location. Created once per run and
// never mutated afterwards.
type Record struct {
	LocationID string
	// LastStatusTime is the latest at-or-before observation's timestamp
	// converted into the location's zone; nil when no observation
	// exists at or before the reference instant.
	LastStatusTime *time.Time
	LastStatus     string
	Schedule       WeeklySchedule
	IsOpen         bool
}

// Compiler assembles report records and serializes them into CSV
// artifacts on disk.
type Compiler struct {
	store  store.Store
	outDir string
}

// NewCompiler creates a report compiler writing artifacts into outDir.
func NewCompiler(s store.Store, outDir string) *Compiler {
	return &Compiler{store: s, outDir: outDir}
}

// ArtifactPath returns where the artifact for a job id lives once
// compilation completes.
func (c *Compiler) ArtifactPath(jobID string) string {
	return filepath.Join(c.outDir, fmt.Sprintf("report_%s.csv", jobID))
}

// Compile generates the full report for one job: a single reference
// instant, one record per location, then the CSV artifact. The artifact
// is only written after every location has been processed; a failed run
// leaves no artifact behind.
//
// Locations whose time zone cannot be resolved are skipped with a log
// line rather than aborting the whole run.
func (c *Compiler) Compile(ctx context.Context, jobID string) (string, error) {
	ref, err := c.resolveReferenceInstant(ctx)
	if err != nil {
		return "", err
	}

	locations, err := c.store.ListLocations(ctx)
	if err != nil {
		return "", err
	}

	records := make([]Record, 0, len(locations))
	for _, loc := range locations {
		zone, err := time.LoadLocation(loc.Timezone)
		if err != nil {
			log.Printf("Skipping location %s: unresolvable time zone %q: %v", loc.ID, loc.Timezone, err)
			continue
		}

		rows, err := c.store.BusinessHours(ctx, loc.ID)
		if err != nil {
			return "", err
		}
		schedule := ResolveSchedule(rows)

		obs, err := c.store.LatestObservationAt(ctx, loc.ID, ref)
		if err != nil {
			return "", err
		}

		record := Record{LocationID: loc.ID, Schedule: schedule}
		if obs != nil {
			localTime := obs.Timestamp.In(zone)
			record.LastStatusTime = &localTime
			record.LastStatus = obs.Status
		}

		open, err := IsOpen(schedule, zone, ref)
		if err != nil {
			log.Printf("Skipping location %s: %v", loc.ID, err)
			continue
		}
		record.IsOpen = open

		records = append(records, record)
	}

	path := c.ArtifactPath(jobID)
	if err := c.writeArtifact(path, records); err != nil {
		return "", err
	}
	return path, nil
}

// resolveReferenceInstant computes the single instant the whole run is
// evaluated against: the newest observation timestamp anywhere in
// storage, or the current UTC time when there are no observations.
func (c *Compiler) resolveReferenceInstant(ctx context.Context) (time.Time, error) {
	latest, err := c.store.MaxObservationTimestamp(ctx)
	if err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Now().UTC(), nil
	}
	return latest.UTC(), nil
}

// artifactHeader builds the fixed CSV column set.
func artifactHeader() []string {
	header := []string{"location_id", "last_status_time", "last_status"}
	for _, day := range reportDayOrder {
		header = append(header, day.String()+"_open", day.String()+"_close")
	}
	return append(header, "is_open")
}

// writeArtifact serializes all records into the CSV file for the job.
// The file is written via a temp file and rename so a crash mid-write
// never leaves a readable partial artifact.
func (c *Compiler) writeArtifact(path string, records []Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "report_*.csv.tmp")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(artifactHeader()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write report header: %w", err)
	}
	for _, record := range records {
		if err := w.Write(record.row()); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to finalize report file: %w", err)
	}
	return nil
}

// row flattens a record into the artifact's column order. Absent values
// become empty strings.
func (r Record) row() []string {
	row := make([]string, 0, 18)
	row = append(row, r.LocationID)

	if r.LastStatusTime != nil {
		row = append(row, r.LastStatusTime.Format(time.RFC3339))
	} else {
		row = append(row, "")
	}
	row = append(row, r.LastStatus)

	for _, day := range reportDayOrder {
		if hours, ok := r.Schedule.HoursFor(day); ok {
			row = append(row, hours.Open, hours.Close)
		} else {
			row = append(row, "", "")
		}
	}

	return append(row, strconv.FormatBool(r.IsOpen))
}
