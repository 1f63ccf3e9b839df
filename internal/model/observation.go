package model

import "time"

// Observation statuses as stored and reported.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Observation is one reachability sample for a location. Rows are
// append-only and never mutated once recorded.
type Observation struct {
	ID         int64     `gorm:"autoIncrement;primaryKey"`
	LocationID string    `gorm:"size:64;not null;index:idx_observations_location_time,priority:1"`
	Timestamp  time.Time `gorm:"not null;index:idx_observations_location_time,priority:2"` // UTC
	Status     string    `gorm:"size:16;not null"`
}
