package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/icekidtech/information-systems/internal/models"
	"github.com/icekidtech/information-systems/internal/security"
	"github.com/icekidtech/information-systems/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuth(t *testing.T) (*Service, *store.AccountStore) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_%d?mode=memory&cache=shared", time.Now().UnixNano())
	conn, errOpen := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, errOpen)
	require.NoError(t, conn.AutoMigrate(&models.Account{}))

	accounts := store.NewAccountStore(conn)
	return NewService(accounts), accounts
}

// seedAccount inserts an account and optionally approves it with the passcode.
func seedAccount(t *testing.T, accounts *store.AccountStore, externalID, email, passcode string, approve bool) uint64 {
	t.Helper()
	ctx := context.Background()
	id, errInsert := accounts.InsertPending(ctx, "Jane Doe", externalID, email)
	require.NoError(t, errInsert)
	if approve {
		hash, errHash := security.HashPasscode(passcode)
		require.NoError(t, errHash)
		require.NoError(t, accounts.SetApproved(ctx, id, hash))
	}
	return id
}

func TestLoginSucceedsCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	svc, accounts := setupAuth(t)
	id := seedAccount(t, accounts, "24/is/co/346", "jane@example.com", "K9xQ2fLpZ", true)

	identity, errLogin := svc.Login(ctx, "24/IS/CO/346", "K9xQ2fLpZ")
	require.NoError(t, errLogin)
	assert.Equal(t, id, identity.AccountID)
	assert.Equal(t, "24/is/co/346", identity.ExternalID)
	assert.Equal(t, models.RoleStudent, identity.Role)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, accounts := setupAuth(t)
	seedAccount(t, accounts, "24/is/co/346", "jane@example.com", "K9xQ2fLpZ", true)
	seedAccount(t, accounts, "24/is/co/347", "pending@example.com", "", false)

	cases := []struct {
		name       string
		externalID string
		passcode   string
	}{
		{"wrong passcode", "24/is/co/346", "WrongOne1"},
		{"unknown account", "99/no/pe/999", "K9xQ2fLpZ"},
		{"still pending", "24/is/co/347", "K9xQ2fLpZ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity, errLogin := svc.Login(ctx, tc.externalID, tc.passcode)
			assert.Nil(t, identity)
			assert.ErrorIs(t, errLogin, ErrInvalidCredentials,
				"all login failures must share one error kind")
		})
	}
}

func TestChangeSecret(t *testing.T) {
	ctx := context.Background()
	svc, accounts := setupAuth(t)
	id := seedAccount(t, accounts, "24/is/co/346", "jane@example.com", "K9xQ2fLpZ", true)

	t.Run("weak new passcode", func(t *testing.T) {
		errChange := svc.ChangeSecret(ctx, id, "K9xQ2fLpZ", "abc12")
		assert.ErrorIs(t, errChange, ErrWeakSecret)
	})

	t.Run("wrong current passcode and weak new passcode", func(t *testing.T) {
		// Credential verification comes first, so a bad current passcode
		// wins over a too-short replacement.
		errChange := svc.ChangeSecret(ctx, id, "WrongOne1", "abc12")
		assert.ErrorIs(t, errChange, ErrInvalidCredentials)
		assert.NotErrorIs(t, errChange, ErrWeakSecret)
	})

	t.Run("wrong current passcode", func(t *testing.T) {
		errChange := svc.ChangeSecret(ctx, id, "WrongOne1", "NewPass42")
		assert.ErrorIs(t, errChange, ErrInvalidCredentials)

		// The stored hash must be untouched.
		_, errLogin := svc.Login(ctx, "24/is/co/346", "K9xQ2fLpZ")
		assert.NoError(t, errLogin)
	})

	t.Run("valid change", func(t *testing.T) {
		require.NoError(t, svc.ChangeSecret(ctx, id, "K9xQ2fLpZ", "NewPass42"))

		_, errOld := svc.Login(ctx, "24/is/co/346", "K9xQ2fLpZ")
		assert.ErrorIs(t, errOld, ErrInvalidCredentials)

		identity, errNew := svc.Login(ctx, "24/is/co/346", "NewPass42")
		require.NoError(t, errNew)
		assert.Equal(t, id, identity.AccountID)
	})
}

func TestChangeSecretUnknownAccount(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupAuth(t)
	errChange := svc.ChangeSecret(ctx, 424242, "whatever1", "NewPass42")
	assert.ErrorIs(t, errChange, ErrInvalidCredentials)
}
