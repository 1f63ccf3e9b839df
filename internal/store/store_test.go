package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"uptime-report-backend/internal/model"
)

// A helper function to create a migrated test database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&model.Location{}, &model.BusinessHours{}, &model.Observation{}))
	return gormDB
}

func TestGormStore_UpsertLocations(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.UpsertLocations(ctx, []model.Location{
		{ID: "loc-1", Timezone: "America/Chicago"},
		{ID: "loc-2", Timezone: "America/New_York"},
	}))

	// Re-upserting the same id refreshes the zone instead of failing.
	require.NoError(t, s.UpsertLocations(ctx, []model.Location{
		{ID: "loc-1", Timezone: "America/Denver"},
	}))

	locations, err := s.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "loc-1", locations[0].ID)
	assert.Equal(t, "America/Denver", locations[0].Timezone)
	assert.Equal(t, "loc-2", locations[1].ID)
}

func TestGormStore_BusinessHours(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.UpsertLocations(ctx, []model.Location{
		{ID: "loc-1", Timezone: "America/Chicago"},
		{ID: "loc-2", Timezone: "America/Chicago"},
	}))
	require.NoError(t, s.CreateBusinessHours(ctx, []model.BusinessHours{
		{LocationID: "loc-1", DayOfWeek: 3, Open: "10:00", Close: "18:00"},
		{LocationID: "loc-1", DayOfWeek: 1, Open: "09:00", Close: "17:00"},
		{LocationID: "loc-2", DayOfWeek: 5, Open: "08:00", Close: "16:00"},
	}))

	hours, err := s.BusinessHours(ctx, "loc-1")
	require.NoError(t, err)
	require.Len(t, hours, 2, "only the requested location's rows")
	assert.Equal(t, 1, hours[0].DayOfWeek, "rows come back ordered by day")
	assert.Equal(t, 3, hours[1].DayOfWeek)

	none, err := s.BusinessHours(ctx, "loc-3")
	require.NoError(t, err)
	assert.Empty(t, none, "a schedule-less location is an empty result, not an error")
}

func TestGormStore_MaxObservationTimestamp(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	max, err := s.MaxObservationTimestamp(ctx)
	require.NoError(t, err)
	assert.Nil(t, max, "no observations anywhere yields nil, not an error")

	t1 := time.Date(2023, 1, 23, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2023, 1, 24, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateObservations(ctx, []model.Observation{
		{LocationID: "loc-1", Timestamp: t2, Status: model.StatusActive},
		{LocationID: "loc-2", Timestamp: t1, Status: model.StatusInactive},
	}))

	max, err = s.MaxObservationTimestamp(ctx)
	require.NoError(t, err)
	require.NotNil(t, max)
	assert.True(t, max.Equal(t2), "expected %s, got %s", t2, max)
}

func TestGormStore_LatestObservationAt(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	t1 := time.Date(2023, 1, 23, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2023, 1, 23, 11, 0, 0, 0, time.UTC)
	t3 := time.Date(2023, 1, 23, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateObservations(ctx, []model.Observation{
		{LocationID: "loc-1", Timestamp: t1, Status: model.StatusActive},
		{LocationID: "loc-1", Timestamp: t2, Status: model.StatusInactive},
		{LocationID: "loc-1", Timestamp: t3, Status: model.StatusActive},
		{LocationID: "loc-2", Timestamp: t3, Status: model.StatusInactive},
	}))

	// Between t2 and t3: t2 is the latest at-or-before.
	obs, err := s.LatestObservationAt(ctx, "loc-1", t2.Add(30*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, obs)
	assert.True(t, obs.Timestamp.Equal(t2))
	assert.Equal(t, model.StatusInactive, obs.Status)

	// Exactly at t2: the boundary is inclusive.
	obs, err = s.LatestObservationAt(ctx, "loc-1", t2)
	require.NoError(t, err)
	require.NotNil(t, obs)
	assert.True(t, obs.Timestamp.Equal(t2))

	// Before every observation: absent, and not an error.
	obs, err = s.LatestObservationAt(ctx, "loc-1", t1.Add(-time.Minute))
	require.NoError(t, err)
	assert.Nil(t, obs)

	// Unknown location: absent as well.
	obs, err = s.LatestObservationAt(ctx, "loc-9", t3)
	require.NoError(t, err)
	assert.Nil(t, obs)
}
