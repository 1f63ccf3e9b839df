package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"uptime-report-backend/internal/model"
)

// Store defines the interface for all database operations.
//
// The write operations exist for the seed loader and the observation
// collector; the read operations are what report compilation consumes.
type Store interface {
	UpsertLocations(ctx context.Context, locations []model.Location) error
	CreateBusinessHours(ctx context.Context, hours []model.BusinessHours) error
	CreateObservations(ctx context.Context, observations []model.Observation) error

	ListLocations(ctx context.Context) ([]model.Location, error)
	BusinessHours(ctx context.Context, locationID string) ([]model.BusinessHours, error)
	MaxObservationTimestamp(ctx context.Context) (*time.Time, error)
	LatestObservationAt(ctx context.Context, locationID string, at time.Time) (*model.Observation, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// UpsertLocations inserts or refreshes location rows in one batch.
func (s *gormStore) UpsertLocations(ctx context.Context, locations []model.Location) error {
	if len(locations) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"timezone", "updated_at"}),
	}).Create(&locations).Error
	if err != nil {
		return fmt.Errorf("batch upsert locations failed: %w", err)
	}
	return nil
}

// CreateBusinessHours appends weekly-interval rows in one batch.
func (s *gormStore) CreateBusinessHours(ctx context.Context, hours []model.BusinessHours) error {
	if len(hours) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&hours).Error; err != nil {
		return fmt.Errorf("batch create business hours failed: %w", err)
	}
	return nil
}

// CreateObservations appends observation rows in one batch. Observations
// are immutable once written, so this is a plain insert.
func (s *gormStore) CreateObservations(ctx context.Context, observations []model.Observation) error {
	if len(observations) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(&observations, 500).Error; err != nil {
		return fmt.Errorf("batch create observations failed: %w", err)
	}
	return nil
}

// ListLocations returns all monitored locations ordered by id, so that
// report rows come out in a stable order within a run.
func (s *gormStore) ListLocations(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	if err := s.db.WithContext(ctx).Order("id").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// BusinessHours returns the stored weekly intervals for one location.
// An empty result means the location has no explicit schedule.
func (s *gormStore) BusinessHours(ctx context.Context, locationID string) ([]model.BusinessHours, error) {
	var hours []model.BusinessHours
	err := s.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("day_of_week").
		Find(&hours).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business hours for location %s: %w", locationID, err)
	}
	return hours, nil
}

// MaxObservationTimestamp returns the newest observation timestamp
// across all locations, or nil when no observations exist.
func (s *gormStore) MaxObservationTimestamp(ctx context.Context) (*time.Time, error) {
	var obs model.Observation
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		First(&obs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch max observation timestamp: %w", err)
	}
	ts := obs.Timestamp
	return &ts, nil
}

// LatestObservationAt returns the most recent observation for the
// location timestamped at or before the given instant. A nil result
// means no such observation exists; that is not an error.
func (s *gormStore) LatestObservationAt(ctx context.Context, locationID string, at time.Time) (*model.Observation, error) {
	var obs model.Observation
	err := s.db.WithContext(ctx).
		Where("location_id = ? AND timestamp <= ?", locationID, at).
		Order("timestamp DESC").
		First(&obs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest observation for location %s: %w", locationID, err)
	}
	return &obs, nil
}
