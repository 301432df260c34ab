package registration

import (
	"fmt"
	"regexp"
	"strings"
)

// ExternalIDPattern is the accepted registration number shape, e.g.
// "24/is/co/346". Exported so any future surface validates against this
// one definition.
const ExternalIDPattern = `^[0-9]{2}/[a-z]{2,4}/[a-z]{2,4}/[0-9]{3,4}$`

// emailPattern is a standard email-shape check; deliverability is not verified.
const emailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

var (
	externalIDRegexp = regexp.MustCompile(ExternalIDPattern)
	emailRegexp      = regexp.MustCompile(emailPattern)
)

// ValidationError reports a field-level signup validation failure.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("registration: invalid %s: %s", e.Field, e.Message)
}

// validateSignUp checks and normalizes signup input.
//
// Normalization (lower-casing of the registration number and email) happens
// here, before any store access, so malformed input never reaches the store.
func validateSignUp(name, externalID, email string) (normalizedExternalID, normalizedEmail string, err error) {
	if strings.TrimSpace(name) == "" {
		return "", "", &ValidationError{Field: "name", Message: "must not be empty"}
	}

	normalizedExternalID = strings.ToLower(strings.TrimSpace(externalID))
	if normalizedExternalID == "" {
		return "", "", &ValidationError{Field: "regNumber", Message: "must not be empty"}
	}
	if !externalIDRegexp.MatchString(normalizedExternalID) {
		return "", "", &ValidationError{Field: "regNumber", Message: "must match NN/xx/xx/NNN, e.g. 24/is/co/346"}
	}

	normalizedEmail = strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" {
		return "", "", &ValidationError{Field: "email", Message: "must not be empty"}
	}
	if !emailRegexp.MatchString(normalizedEmail) {
		return "", "", &ValidationError{Field: "email", Message: "must be a valid email address"}
	}

	return normalizedExternalID, normalizedEmail, nil
}
