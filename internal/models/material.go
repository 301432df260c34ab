package models

import "time"

// Material represents an uploaded course material file.
//
// The file body lives on disk under FileName; only metadata is stored here.
type Material struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	CourseID uint64 `gorm:"not null;index"` // Owning course.

	Title        string `gorm:"type:text;not null"`             // Display title.
	FileName     string `gorm:"type:text;not null;uniqueIndex"` // Stored file name (UUID-derived).
	OriginalName string `gorm:"type:text;not null"`             // Name of the uploaded file.
	SizeBytes    int64  `gorm:"not null;default:0"`             // Upload size.
	ContentType  string `gorm:"type:text"`                      // Declared content type.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
