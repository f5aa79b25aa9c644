package validator

import (
	"errors"
	"testing"
)

type sampleInput struct {
	FirstName string `validate:"required,min=2,max=50,alphaspace"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,password"`
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Valid", func(t *testing.T) {
		err := v.Validate(sampleInput{
			FirstName: "Jane Marie",
			Email:     "jane@example.com",
			Password:  "hunter22",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("FieldKeysAreSnakeCase", func(t *testing.T) {
		err := v.Validate(sampleInput{
			Email:    "jane@example.com",
			Password: "hunter22",
		})

		var verr V10ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected V10ValidationError, got %T", err)
		}
		if _, ok := verr.Values()["first_name"]; !ok {
			t.Fatalf("expected first_name key, got %v", verr.Values())
		}
	})

	t.Run("PasswordTooShort", func(t *testing.T) {
		err := v.Validate(sampleInput{
			FirstName: "Jane",
			Email:     "jane@example.com",
			Password:  "short",
		})

		var verr V10ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected V10ValidationError, got %T", err)
		}
		if _, ok := verr.Values()["password"]; !ok {
			t.Fatalf("expected password key, got %v", verr.Values())
		}
	})

	t.Run("AlphaspaceRejectsDigits", func(t *testing.T) {
		err := v.Validate(sampleInput{
			FirstName: "Jane2",
			Email:     "jane@example.com",
			Password:  "hunter22",
		})
		if err == nil {
			t.Fatal("expected a validation error for digits in a name")
		}
	})

	t.Run("BadEmail", func(t *testing.T) {
		err := v.Validate(sampleInput{
			FirstName: "Jane",
			Email:     "not-an-email",
			Password:  "hunter22",
		})
		if err == nil {
			t.Fatal("expected a validation error for a malformed email")
		}
	})
}
