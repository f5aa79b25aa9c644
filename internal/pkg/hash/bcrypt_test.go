package hash

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	// Arrange
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	// Act
	hashed, err := h.Hash("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Assert
	if !h.Verify(string(hashed), "s3cret") {
		t.Fatal("expected verification to succeed for the original plaintext")
	}
	if h.Verify(string(hashed), "wrong") {
		t.Fatal("expected verification to fail for a wrong plaintext")
	}
}

func TestBcryptPepperMismatch(t *testing.T) {
	// Arrange
	withPepper := NewBcrypt(bcrypt.MinCost, "pepper")
	withoutPepper := NewBcrypt(bcrypt.MinCost, "")

	hashed, err := withPepper.Hash("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act & Assert
	if withoutPepper.Verify(string(hashed), "s3cret") {
		t.Fatal("expected verification to fail without the pepper")
	}
}
