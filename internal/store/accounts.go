// Package store provides durable keyed storage for account records.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/icekidtech/information-systems/internal/models"
	"gorm.io/gorm"
)

// Store errors.
var (
	// ErrDuplicateKey indicates a unique index collision on insert.
	ErrDuplicateKey = errors.New("store: duplicate key")
	// ErrNotFound indicates no row matched the requested key and state.
	ErrNotFound = errors.New("store: not found")
	// ErrUnavailable indicates an unexpected storage failure; callers may retry.
	ErrUnavailable = errors.New("store: unavailable")
)

// AccountStore persists Account rows with uniqueness enforcement.
//
// Uniqueness of external IDs and emails relies on the table's unique
// indexes, not on pre-check queries, so concurrent signups cannot race
// past a check-then-insert window.
type AccountStore struct {
	db *gorm.DB
}

// NewAccountStore constructs an AccountStore over an open connection.
func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// InsertPending creates a pending account without a passcode hash.
//
// Inputs are expected to be normalized (lower-cased) by the caller.
func (s *AccountStore) InsertPending(ctx context.Context, name, externalID, email string) (uint64, error) {
	now := time.Now().UTC()
	account := models.Account{
		Name:       name,
		ExternalID: externalID,
		Email:      email,
		Role:       models.RoleStudent,
		State:      models.StatePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if errCreate := s.db.WithContext(ctx).Create(&account).Error; errCreate != nil {
		if errors.Is(errCreate, gorm.ErrDuplicatedKey) {
			return 0, ErrDuplicateKey
		}
		return 0, wrapUnavailable("insert account", errCreate)
	}
	return account.ID, nil
}

// FindByExternalID looks up an account by registration number, case-insensitively.
func (s *AccountStore) FindByExternalID(ctx context.Context, externalID string) (*models.Account, error) {
	normalized := strings.ToLower(strings.TrimSpace(externalID))
	var account models.Account
	if errFind := s.db.WithContext(ctx).
		Where("external_id = ?", normalized).
		First(&account).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapUnavailable("find account", errFind)
	}
	return &account, nil
}

// FindByID looks up an account by primary key.
func (s *AccountStore) FindByID(ctx context.Context, id uint64) (*models.Account, error) {
	var account models.Account
	if errFind := s.db.WithContext(ctx).First(&account, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapUnavailable("find account", errFind)
	}
	return &account, nil
}

// ListByState returns accounts in the given state, newest first.
func (s *AccountStore) ListByState(ctx context.Context, state string) ([]models.Account, error) {
	var rows []models.Account
	if errFind := s.db.WithContext(ctx).
		Where("state = ?", state).
		Order("created_at DESC").
		Find(&rows).Error; errFind != nil {
		return nil, wrapUnavailable("list accounts", errFind)
	}
	return rows, nil
}

// SetApproved transitions a pending account to active and sets its passcode hash.
//
// The transition is a single conditional UPDATE on state='pending', so of
// two concurrent approvals exactly one succeeds and the other observes
// ErrNotFound.
func (s *AccountStore) SetApproved(ctx context.Context, id uint64, passcodeHash string) error {
	res := s.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ? AND state = ?", id, models.StatePending).
		Updates(map[string]any{
			"state":         models.StateActive,
			"passcode_hash": passcodeHash,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return wrapUnavailable("approve account", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateSecretHash replaces the passcode hash of an active account.
func (s *AccountStore) UpdateSecretHash(ctx context.Context, id uint64, passcodeHash string) error {
	res := s.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ? AND state = ?", id, models.StateActive).
		Updates(map[string]any{
			"passcode_hash": passcodeHash,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return wrapUnavailable("update passcode hash", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// wrapUnavailable tags an unexpected storage failure with ErrUnavailable.
func wrapUnavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
