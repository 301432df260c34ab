package models

import "time"

// Account roles.
const (
	// RoleStudent identifies a regular student account.
	RoleStudent = "student"
	// RoleAdmin identifies the department administrator account.
	RoleAdmin = "admin"
)

// Account states.
const (
	// StatePending marks a signup awaiting admin approval; it cannot sign in.
	StatePending = "pending"
	// StateActive marks an approved account that can sign in with its passcode.
	StateActive = "active"
)

// Account represents a student or admin identity stored in the database.
type Account struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Name       string `gorm:"type:text;not null"`             // Display name set at signup.
	ExternalID string `gorm:"type:text;not null;uniqueIndex"` // Registration number, stored lower-cased.
	Email      string `gorm:"type:text;not null;uniqueIndex"` // Contact address, stored lower-cased.

	PasscodeHash *string `gorm:"type:text"` // Bcrypt hash; nil while the account is pending.

	Role  string `gorm:"type:text;not null;default:student"` // RoleStudent or RoleAdmin.
	State string `gorm:"type:text;not null;default:pending"` // StatePending or StateActive.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// IsActive reports whether the account has been approved.
func (a Account) IsActive() bool {
	return a.State == StateActive
}
