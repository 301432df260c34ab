package db

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/icekidtech/information-systems/internal/models"
	"github.com/icekidtech/information-systems/internal/security"
	"gorm.io/gorm"
)

// Migrate applies the schema for all persisted models.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return errors.New("db: nil connection")
	}
	return conn.AutoMigrate(
		&models.Account{},
		&models.Course{},
		&models.Material{},
		&models.Event{},
	)
}

// AdminSeed describes the bootstrap administrator account.
type AdminSeed struct {
	Name       string
	ExternalID string
	Email      string
	Passcode   string // Optional; generated when empty.
}

// SeedAdmin ensures exactly one admin account exists.
//
// When no admin row is present one is inserted as active with a hashed
// passcode. The returned string is the generated plaintext passcode, empty
// when a passcode was supplied or an admin already existed.
func SeedAdmin(conn *gorm.DB, seed AdminSeed) (string, error) {
	if conn == nil {
		return "", errors.New("db: nil connection")
	}

	var count int64
	if errCount := conn.Model(&models.Account{}).
		Where("role = ?", models.RoleAdmin).
		Count(&count).Error; errCount != nil {
		return "", fmt.Errorf("db: count admins: %w", errCount)
	}
	if count > 0 {
		return "", nil
	}

	passcode := strings.TrimSpace(seed.Passcode)
	generated := ""
	if passcode == "" {
		var errGen error
		passcode, errGen = security.GeneratePasscode()
		if errGen != nil {
			return "", fmt.Errorf("db: generate admin passcode: %w", errGen)
		}
		generated = passcode
	}

	hash, errHash := security.HashPasscode(passcode)
	if errHash != nil {
		return "", fmt.Errorf("db: hash admin passcode: %w", errHash)
	}

	now := time.Now().UTC()
	admin := models.Account{
		Name:         seed.Name,
		ExternalID:   strings.ToLower(strings.TrimSpace(seed.ExternalID)),
		Email:        strings.ToLower(strings.TrimSpace(seed.Email)),
		PasscodeHash: &hash,
		Role:         models.RoleAdmin,
		State:        models.StateActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if errCreate := conn.Create(&admin).Error; errCreate != nil {
		return "", fmt.Errorf("db: seed admin: %w", errCreate)
	}
	return generated, nil
}
