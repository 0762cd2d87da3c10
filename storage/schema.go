package storage

import "time"

// Tune is a named note sequence saved for replay.
type Tune struct {
	Name      string `gorm:"primaryKey"`
	Notes     string `gorm:"not null"`
	PlayCount int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
