package validator

import (
	"errors"
	"testing"
)

func TestV10ValidatorPasscodeRule(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	type payload struct {
		Code string `validate:"required,passcode"`
	}

	cases := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "SixDigits", code: "123456", wantErr: false},
		{name: "LeadingZeros", code: "000042", wantErr: false},
		{name: "TooShort", code: "12345", wantErr: true},
		{name: "TooLong", code: "1234567", wantErr: true},
		{name: "Letters", code: "abcdef", wantErr: true},
		{name: "MixedDigitsAndSpace", code: "12345 ", wantErr: true},
		{name: "Empty", code: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {

			// Act
			err := v.Validate(payload{Code: tc.code})

			// Assert
			if tc.wantErr && err == nil {
				t.Fatalf("expected %q to fail validation", tc.code)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected %q to pass validation, got %v", tc.code, err)
			}
		})
	}
}

func TestV10ValidatorFieldErrors(t *testing.T) {

	// Arrange
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	type payload struct {
		Email string `validate:"required,email"`
		Code  string `validate:"required,passcode"`
	}

	// Act
	err = v.Validate(payload{Email: "nope", Code: "12"})

	// Assert
	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected V10ValidationError, got %T", err)
	}
	if _, ok := verr.Values()["email"]; !ok {
		t.Fatalf("expected snake_case email key, got %v", verr.Values())
	}
	if msg := verr.Values()["code"]; msg != "Code must be exactly 6 digits" {
		t.Fatalf("unexpected passcode message %q", msg)
	}
}
