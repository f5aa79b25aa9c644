package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	codeMin = 1000
	codeMax = 9999
)

// OTP defines the contract for one-time code operations.
type OTP interface {
	// Generate creates a fresh numeric code.
	Generate() (string, error)
	// ExpiresAt computes the expiry instant for a code issued now,
	// expressed as Unix milliseconds.
	ExpiresAt(now time.Time) int64
	// IsExpired reports whether a code issued with the given expiry
	// (Unix milliseconds) is no longer usable at the given time.
	IsExpired(expiresAtMillis int64, now time.Time) bool
}

// Numeric implements OTP with uniformly random four-digit codes.
type Numeric struct {
	ttl time.Duration
}

// NewNumeric constructs a Numeric code generator. If ttl is not positive it
// falls back to one minute.
func NewNumeric(ttl time.Duration) *Numeric {
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &Numeric{ttl: ttl}
}

// Generate creates a random code in [1000, 9999] using crypto/rand.
//
// The range never produces leading zeros, so the code survives any
// numeric round-trip intact.
func (o *Numeric) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeMax-codeMin+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	return fmt.Sprintf("%d", codeMin+n.Int64()), nil
}

// ExpiresAt computes the expiry instant for a code issued at now.
func (o *Numeric) ExpiresAt(now time.Time) int64 {
	return now.Add(o.ttl).UnixMilli()
}

// IsExpired reports whether the expiry instant has passed. A code is usable
// only while its expiry is strictly in the future.
func (o *Numeric) IsExpired(expiresAtMillis int64, now time.Time) bool {
	return expiresAtMillis <= now.UnixMilli()
}
