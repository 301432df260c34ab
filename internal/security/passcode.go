package security

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost defines the bcrypt work factor for passcode hashes.
const bcryptCost = 12

// passcodeAlphabet is the character set passcodes are drawn from.
const passcodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// PasscodeLength is the fixed length of generated one-time passcodes.
const PasscodeLength = 9

// GeneratePasscode creates a random alphanumeric passcode.
//
// Characters are drawn uniformly from crypto/rand; a time-seeded generator
// must never be used here.
func GeneratePasscode() (string, error) {
	max := big.NewInt(int64(len(passcodeAlphabet)))
	out := make([]byte, PasscodeLength)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate passcode: %w", err)
		}
		out[i] = passcodeAlphabet[n.Int64()]
	}
	return string(out), nil
}

// HashPasscode hashes a plaintext passcode using bcrypt.
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasscode compares a bcrypt hash with a plaintext passcode.
func CheckPasscode(hash, passcode string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(passcode)) == nil
}
