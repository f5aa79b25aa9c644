package jwt

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type fakeUUID struct{}

func (fakeUUID) Generate() string {
	return "0198c0de-0000-7000-8000-000000000001"
}

func testConfig(clk *fakeClock) Config {
	return Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Issuer:     "mist",
		Audiences:  []string{"mist-web"},
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
		Clock:      clk,
		UUID:       fakeUUID{},
	}
}

func TestNewHS256ShortSecret(t *testing.T) {
	// Arrange
	cfg := testConfig(&fakeClock{now: time.Now()})
	cfg.Secret = []byte("too-short")

	// Act
	_, err := NewHS256(cfg)

	// Assert
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestSymmetricRoundTrip(t *testing.T) {
	// Arrange
	clk := &fakeClock{now: time.Now()}
	sym, err := NewHS256(testConfig(clk))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act
	token, err := sym.GenerateAccess(42, "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	claims, err := sym.Verify(token)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Subject != "jane@example.com" {
		t.Fatalf("expected subject to carry the email, got %q", claims.Subject)
	}
	if claims.Issuer != "mist" {
		t.Fatalf("expected issuer mist, got %q", claims.Issuer)
	}
}

func TestSymmetricVerifyExpired(t *testing.T) {
	// Arrange
	clk := &fakeClock{now: time.Now().Add(-2 * time.Hour)}
	sym, err := NewHS256(testConfig(clk))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token, err := sym.GenerateAccess(42, "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act
	_, err = sym.Verify(token)

	// Assert
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSymmetricVerifyWrongSecret(t *testing.T) {
	// Arrange
	clk := &fakeClock{now: time.Now()}
	signer, err := NewHS256(testConfig(clk))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	otherCfg := testConfig(clk)
	otherCfg.Secret = []byte("fedcba9876543210fedcba9876543210")
	verifier, err := NewHS256(otherCfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := signer.GenerateAccess(42, "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act
	_, err = verifier.Verify(token)

	// Assert
	if err == nil {
		t.Fatal("expected verification to fail with a different secret")
	}
}

func TestSymmetricVerifyGarbage(t *testing.T) {
	// Arrange
	sym, err := NewHS256(testConfig(&fakeClock{now: time.Now()}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act
	_, err = sym.Verify("not-a-jwt")

	// Assert
	if err == nil {
		t.Fatal("expected verification to fail for a malformed token")
	}
}

func TestRefreshOutlivesAccess(t *testing.T) {
	// Arrange
	clk := &fakeClock{now: time.Now()}
	sym, err := NewHS256(testConfig(clk))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	access, err := sym.GenerateAccess(1, "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refresh, err := sym.GenerateRefresh(1, "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Act
	accessClaims, err := sym.Verify(access)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refreshClaims, err := sym.Verify(refresh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Assert
	if !refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time) {
		t.Fatal("expected refresh token to expire after access token")
	}
}

func TestGetAuthMissing(t *testing.T) {
	if clm := GetAuth(t.Context()); clm != nil {
		t.Fatalf("expected nil claims, got %+v", clm)
	}
}

func TestSetAuthGetAuth(t *testing.T) {
	// Arrange
	in := Claims{UserID: 7}

	// Act
	ctx := SetAuth(t.Context(), in)
	out := GetAuth(ctx)

	// Assert
	if out == nil || out.UserID != 7 {
		t.Fatalf("expected stored claims back, got %+v", out)
	}
}
