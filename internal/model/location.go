package model

import "time"

// Location represents a monitored site.
type Location struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Timezone  string    `gorm:"size:64;not null"` // IANA zone name, e.g. "America/Chicago"
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	// Associations
	BusinessHours []BusinessHours `gorm:"foreignKey:LocationID"`
}

// DefaultTimezone is assumed for locations whose seed data carries no zone.
const DefaultTimezone = "America/Chicago"
