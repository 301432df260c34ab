package models

import (
	"time"

	"gorm.io/datatypes"
)

// Event represents a department event posting.
type Event struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Title string         `gorm:"type:text;not null"`              // Event title.
	Body  string         `gorm:"type:text;not null"`              // Event description.
	Tags  datatypes.JSON `gorm:"type:json;not null;default:'[]'"` // Tag strings in JSON.

	StartsAt *time.Time // Optional scheduled start.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
