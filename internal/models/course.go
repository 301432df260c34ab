package models

import "time"

// Course represents a department course that materials are filed under.
type Course struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Code        string `gorm:"type:text;not null;uniqueIndex"` // Course code, e.g. "CSC121".
	Title       string `gorm:"type:text;not null"`             // Human-readable course title.
	Description string `gorm:"type:text"`                      // Optional description.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
