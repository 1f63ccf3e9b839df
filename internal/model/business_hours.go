package model

// BusinessHours is one stored open interval for one local weekday.
//
// DayOfWeek follows time.Weekday: Sunday=0 .. Saturday=6. Open and
// Close are local wall-clock times formatted "HH:MM"; "24:00" is the
// permitted end-of-day sentinel for Close. Intervals never wrap past
// midnight.
type BusinessHours struct {
	ID         int64  `gorm:"autoIncrement;primaryKey"`
	LocationID string `gorm:"size:64;index;not null"`
	DayOfWeek  int    `gorm:"not null"`
	Open       string `gorm:"size:5;not null"`
	Close      string `gorm:"size:5;not null"`

	// Associations
	Location Location `gorm:"constraint:OnDelete:CASCADE"`
}
