package registration

import "testing"

func TestValidateSignUpNormalizes(t *testing.T) {
	externalID, email, errValidate := validateSignUp("Jane Doe", "24/IS/CO/346", "Jane@Example.COM")
	if errValidate != nil {
		t.Fatalf("validate: %v", errValidate)
	}
	if externalID != "24/is/co/346" {
		t.Fatalf("external id not normalized: %q", externalID)
	}
	if email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", email)
	}
}

func TestValidateSignUpRejects(t *testing.T) {
	cases := []struct {
		name       string
		inputName  string
		externalID string
		email      string
		wantField  string
	}{
		{"empty name", "", "24/is/co/346", "jane@example.com", "name"},
		{"empty reg number", "Jane", "", "jane@example.com", "regNumber"},
		{"short reg number", "Jane", "24/abc/1", "jane@example.com", "regNumber"},
		{"letters in year", "Jane", "abc/is/co/123", "jane@example.com", "regNumber"},
		{"segment too long", "Jane", "24/abcde/co/123", "jane@example.com", "regNumber"},
		{"serial too short", "Jane", "24/is/co/12", "jane@example.com", "regNumber"},
		{"empty email", "Jane", "24/is/co/346", "", "email"},
		{"email without at", "Jane", "24/is/co/346", "jane.example.com", "email"},
		{"email without domain dot", "Jane", "24/is/co/346", "jane@example", "email"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, errValidate := validateSignUp(tc.inputName, tc.externalID, tc.email)
			if errValidate == nil {
				t.Fatalf("expected validation error")
			}
			validationErr, ok := errValidate.(*ValidationError)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", errValidate)
			}
			if validationErr.Field != tc.wantField {
				t.Fatalf("field = %q, want %q", validationErr.Field, tc.wantField)
			}
		})
	}
}

func TestExternalIDPatternAcceptsFourDigitSerial(t *testing.T) {
	if _, _, err := validateSignUp("Jane", "24/abcd/soc/1234", "jane@example.com"); err != nil {
		t.Fatalf("expected 2-4 letter segments and 3-4 digit serial to pass: %v", err)
	}
}
