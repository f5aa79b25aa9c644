package entity

import "time"

type User struct {
	ID         int64
	Email      string
	Password   string // hashed
	FirstName  string
	LastName   string
	BirthDate  *time.Time
	BirthPlace string
	Role       Role
	UpdatedAt  time.Time
}

// Otp is the single live one-time code for a user. The row shares the user's
// identifier so a user can never hold more than one code; issuing a new code
// overwrites the previous one in place.
type Otp struct {
	UserID    int64
	Code      string // hashed
	CreatedAt int64  // epoch millis
	ExpiresAt int64  // epoch millis
}

// Token is a persisted access token record. A token is usable only while both
// Expired and Revoked are false and its embedded signature still verifies.
type Token struct {
	ID      int64
	UserID  int64
	Token   string
	Type    TokenType
	Expired bool
	Revoked bool
}

// PatchUser carries a partial profile update. Zero-valued fields are left
// untouched.
type PatchUser struct {
	ID         int64
	FirstName  string
	LastName   string
	BirthDate  *time.Time
	BirthPlace string
}

// Authentication is the outcome of a credential verification step. Status
// tells the caller how far the flow has progressed; Authorities is empty
// until the second factor clears.
type Authentication struct {
	Status      AuthStatus
	UserID      int64
	Email       string
	Authorities []string
}
