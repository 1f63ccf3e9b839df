package report

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"uptime-report-backend/internal/model"
	"uptime-report-backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.Location{}, &model.BusinessHours{}, &model.Observation{}))
	return store.NewGormStore(gormDB)
}

func TestResolveReferenceInstantNoObservations(t *testing.T) {
	c := NewCompiler(newTestStore(t), t.TempDir())

	ref, err := c.resolveReferenceInstant(context.Background())
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ref, time.Second)
}

func TestResolveReferenceInstantMaxAcrossLocations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t1 := time.Date(2023, 1, 23, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2023, 1, 23, 19, 30, 0, 0, time.UTC)
	require.NoError(t, s.CreateObservations(ctx, []model.Observation{
		{LocationID: "loc-a", Timestamp: t1, Status: model.StatusActive},
		{LocationID: "loc-b", Timestamp: t2, Status: model.StatusInactive},
	}))

	c := NewCompiler(s, t.TempDir())
	ref, err := c.resolveReferenceInstant(ctx)
	assert.NoError(t, err)
	assert.True(t, ref.Equal(t2), "reference instant should be the max timestamp across all locations, got %s", ref)
}

// TestCompileRoundTrip seeds three locations with known fixtures and
// checks the artifact row by row. The reference instant is the max
// observation timestamp, 2023-01-23 19:30 UTC, a Monday afternoon in
// Chicago and already Tuesday morning in Auckland.
func TestCompileRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertLocations(ctx, []model.Location{
		{ID: "loc-a", Timezone: "America/Chicago"},
		{ID: "loc-b", Timezone: "America/Chicago"},
		{ID: "loc-c", Timezone: "Pacific/Auckland"},
		{ID: "loc-x", Timezone: "Not/AZone"}, // skipped, not fatal
	}))
	require.NoError(t, s.CreateBusinessHours(ctx, []model.BusinessHours{
		{LocationID: "loc-a", DayOfWeek: int(time.Monday), Open: "09:00", Close: "17:00"},
		{LocationID: "loc-c", DayOfWeek: int(time.Monday), Open: "09:00", Close: "17:00"},
	}))
	require.NoError(t, s.CreateObservations(ctx, []model.Observation{
		{LocationID: "loc-a", Timestamp: time.Date(2023, 1, 23, 19, 0, 0, 0, time.UTC), Status: model.StatusActive},
		{LocationID: "loc-b", Timestamp: time.Date(2023, 1, 23, 19, 30, 0, 0, time.UTC), Status: model.StatusInactive},
	}))

	outDir := t.TempDir()
	c := NewCompiler(s, outDir)

	path, err := c.Compile(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "report_job-1.csv"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 4, "header plus one row per evaluable location")
	header := rows[0]
	assert.Equal(t, []string{"location_id", "last_status_time", "last_status"}, header[:3])
	assert.Equal(t, "Monday_open", header[3])
	assert.Equal(t, "Monday_close", header[4])
	assert.Equal(t, "Sunday_close", header[16])
	assert.Equal(t, "is_open", header[17])

	byID := make(map[string][]string, 3)
	for _, row := range rows[1:] {
		byID[row[0]] = row
	}

	// loc-a: Monday 09:00-17:00, reference is 13:30 Chicago -> open;
	// its own last observation is 13:00 local.
	rowA := byID["loc-a"]
	require.NotNil(t, rowA)
	assert.Equal(t, "2023-01-23T13:00:00-06:00", rowA[1])
	assert.Equal(t, model.StatusActive, rowA[2])
	assert.Equal(t, "09:00", rowA[3])
	assert.Equal(t, "17:00", rowA[4])
	assert.Equal(t, "", rowA[5], "Tuesday stays absent for a partial-explicit schedule")
	assert.Equal(t, "true", rowA[17])

	// loc-b: no stored hours -> full default schedule, always open.
	rowB := byID["loc-b"]
	require.NotNil(t, rowB)
	assert.Equal(t, "2023-01-23T13:30:00-06:00", rowB[1])
	assert.Equal(t, model.StatusInactive, rowB[2])
	for i := 3; i < 17; i += 2 {
		assert.Equal(t, "00:00", rowB[i])
		assert.Equal(t, "24:00", rowB[i+1])
	}
	assert.Equal(t, "true", rowB[17])

	// loc-c: Monday-only hours but the reference instant is Tuesday in
	// Auckland -> closed; no observation -> empty optional fields.
	rowC := byID["loc-c"]
	require.NotNil(t, rowC)
	assert.Equal(t, "", rowC[1])
	assert.Equal(t, "", rowC[2])
	assert.Equal(t, "false", rowC[17])

	_, skipped := byID["loc-x"]
	assert.False(t, skipped, "a location with an unresolvable zone is skipped, not reported")
}

func TestCompileEmptyStorage(t *testing.T) {
	c := NewCompiler(newTestStore(t), t.TempDir())

	path, err := c.Compile(context.Background(), "job-empty")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only when no locations exist")
}
