// Package auth verifies account credentials against the credential store.
package auth

import (
	"context"
	"errors"

	"github.com/icekidtech/information-systems/internal/security"
	"github.com/icekidtech/information-systems/internal/store"
)

// MinPasscodeLength is the minimum accepted length for a chosen passcode.
const MinPasscodeLength = 6

// Authentication errors.
var (
	// ErrInvalidCredentials covers unknown accounts, unapproved accounts and
	// passcode mismatches alike, so responses cannot be used to enumerate
	// registration numbers.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrWeakSecret indicates a chosen passcode below the minimum length.
	ErrWeakSecret = errors.New("auth: passcode too short")
)

// Identity is the result of a successful login.
type Identity struct {
	AccountID  uint64
	ExternalID string
	Name       string
	Role       string
}

// Service authenticates accounts and manages passcode changes.
type Service struct {
	accounts *store.AccountStore
}

// NewService constructs an auth Service.
func NewService(accounts *store.AccountStore) *Service {
	return &Service{accounts: accounts}
}

// Login verifies a registration number and passcode.
//
// All failure modes return ErrInvalidCredentials except storage outages,
// which surface store.ErrUnavailable.
func (s *Service) Login(ctx context.Context, externalID, passcode string) (*Identity, error) {
	account, errFind := s.accounts.FindByExternalID(ctx, externalID)
	if errFind != nil {
		if errors.Is(errFind, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errFind
	}
	if !account.IsActive() || account.PasscodeHash == nil {
		return nil, ErrInvalidCredentials
	}
	if !security.CheckPasscode(*account.PasscodeHash, passcode) {
		return nil, ErrInvalidCredentials
	}
	return &Identity{
		AccountID:  account.ID,
		ExternalID: account.ExternalID,
		Name:       account.Name,
		Role:       account.Role,
	}, nil
}

// ChangeSecret replaces an account's passcode after verifying the current one.
//
// The current passcode is verified before the new one is inspected, so a
// caller holding bad credentials always sees ErrInvalidCredentials.
func (s *Service) ChangeSecret(ctx context.Context, accountID uint64, currentPasscode, newPasscode string) error {
	account, errFind := s.accounts.FindByID(ctx, accountID)
	if errFind != nil {
		if errors.Is(errFind, store.ErrNotFound) {
			return ErrInvalidCredentials
		}
		return errFind
	}
	if !account.IsActive() || account.PasscodeHash == nil {
		return ErrInvalidCredentials
	}
	if !security.CheckPasscode(*account.PasscodeHash, currentPasscode) {
		return ErrInvalidCredentials
	}

	if len(newPasscode) < MinPasscodeLength {
		return ErrWeakSecret
	}

	hash, errHash := security.HashPasscode(newPasscode)
	if errHash != nil {
		return errHash
	}
	return s.accounts.UpdateSecretHash(ctx, account.ID, hash)
}
