package security

import (
	"strings"
	"testing"
	"time"
)

func TestGeneratePasscodeShape(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 32; i++ {
		passcode, errGen := GeneratePasscode()
		if errGen != nil {
			t.Fatalf("generate passcode: %v", errGen)
		}
		if len(passcode) != PasscodeLength {
			t.Fatalf("passcode %q has length %d, want %d", passcode, len(passcode), PasscodeLength)
		}
		for _, r := range passcode {
			if !strings.ContainsRune(passcodeAlphabet, r) {
				t.Fatalf("passcode %q contains %q outside the alphabet", passcode, r)
			}
		}
		seen[passcode] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected distinct passcodes, got %d unique of 32", len(seen))
	}
}

func TestHashAndCheckPasscode(t *testing.T) {
	hash, errHash := HashPasscode("K9xQ2fLpZ")
	if errHash != nil {
		t.Fatalf("hash passcode: %v", errHash)
	}
	if hash == "K9xQ2fLpZ" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPasscode(hash, "K9xQ2fLpZ") {
		t.Fatal("correct passcode rejected")
	}
	if CheckPasscode(hash, "k9xq2flpz") {
		t.Fatal("passcode check must be case sensitive")
	}
	if CheckPasscode(hash, "wrong") {
		t.Fatal("wrong passcode accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, errGen := GenerateToken("test-secret", 7, "24/is/co/346", "Jane Doe", "student", time.Hour)
	if errGen != nil {
		t.Fatalf("generate token: %v", errGen)
	}

	claims, errParse := ParseToken("test-secret", token)
	if errParse != nil {
		t.Fatalf("parse token: %v", errParse)
	}
	if claims.AccountID != 7 || claims.ExternalID != "24/is/co/346" || claims.Role != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, errWrong := ParseToken("other-secret", token); errWrong == nil {
		t.Fatal("token accepted with wrong secret")
	}
}
