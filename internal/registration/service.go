// Package registration enforces the business rules around student signup
// and admin approval, and owns the passcode generation policy.
package registration

import (
	"context"
	"errors"
	"strings"

	"github.com/icekidtech/information-systems/internal/models"
	"github.com/icekidtech/information-systems/internal/security"
	"github.com/icekidtech/information-systems/internal/store"
	log "github.com/sirupsen/logrus"
)

// ErrAccountExists indicates the registration number or email is already taken.
var ErrAccountExists = errors.New("registration: account already exists")

// Notifier delivers an issued passcode out-of-band.
type Notifier interface {
	SendPasscode(ctx context.Context, email, name, passcode string) error
}

// Service implements the registration lifecycle over an AccountStore.
type Service struct {
	accounts *store.AccountStore
	notifier Notifier
}

// NewService constructs a registration Service.
func NewService(accounts *store.AccountStore, notifier Notifier) *Service {
	return &Service{accounts: accounts, notifier: notifier}
}

// SignUp validates input and creates a pending account.
//
// Returns *ValidationError for malformed input and ErrAccountExists when the
// registration number or email collides with an existing account of either
// state, regardless of case.
func (s *Service) SignUp(ctx context.Context, name, externalID, email string) (uint64, error) {
	normalizedExternalID, normalizedEmail, errValidate := validateSignUp(name, externalID, email)
	if errValidate != nil {
		return 0, errValidate
	}

	id, errInsert := s.accounts.InsertPending(ctx, strings.TrimSpace(name), normalizedExternalID, normalizedEmail)
	if errInsert != nil {
		if errors.Is(errInsert, store.ErrDuplicateKey) {
			return 0, ErrAccountExists
		}
		return 0, errInsert
	}
	return id, nil
}

// ListPending returns pending registrations, newest first.
//
// Admin authorization is the caller's concern.
func (s *Service) ListPending(ctx context.Context) ([]models.Account, error) {
	return s.accounts.ListByState(ctx, models.StatePending)
}

// Approve activates a pending account and issues its one-time passcode.
//
// The plaintext passcode is handed to the notifier for delivery and returned
// to the immediate caller; it is never persisted. Delivery failure is logged
// and does not roll back the approval. Returns store.ErrNotFound when the
// account is absent or already active.
func (s *Service) Approve(ctx context.Context, accountID uint64) (string, error) {
	account, errFind := s.accounts.FindByID(ctx, accountID)
	if errFind != nil {
		return "", errFind
	}
	if account.State != models.StatePending {
		return "", store.ErrNotFound
	}

	passcode, errGen := security.GeneratePasscode()
	if errGen != nil {
		return "", errGen
	}
	hash, errHash := security.HashPasscode(passcode)
	if errHash != nil {
		return "", errHash
	}

	// Conditional on state='pending'; a concurrent approval of the same
	// account loses here with ErrNotFound.
	if errApprove := s.accounts.SetApproved(ctx, account.ID, hash); errApprove != nil {
		return "", errApprove
	}

	if s.notifier != nil {
		if errSend := s.notifier.SendPasscode(ctx, account.Email, account.Name, passcode); errSend != nil {
			log.WithError(errSend).Warnf("registration: passcode delivery failed (account=%d)", account.ID)
		}
	}
	return passcode, nil
}
