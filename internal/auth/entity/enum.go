package entity

import "errors"

var (
	ErrAmbiguousCredential = errors.New("auth: exactly one of password or otp must be supplied")
)

type Role int16

const (
	// RoleUnknown is mean role is not known / not set.
	RoleUnknown Role = 0

	// RoleUser is the default role granted at registration.
	RoleUser Role = 1

	// RoleAdmin mean user has administrative privileges.
	RoleAdmin Role = 2
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "Unknown"
	}
}

func (r Role) IsUnknown() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return false
	default:
		return true
	}
}

// Ensure normalizes an unrecognized role to RoleUnknown.
func (r Role) Ensure() Role {
	switch r {
	case RoleUser, RoleAdmin:
		return r
	default:
		return RoleUnknown
	}
}

func RoleFromString(str string) Role {
	switch str {
	case "USER":
		return RoleUser
	case "ADMIN":
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// Authorities returns the authority names granted by the role.
func (r Role) Authorities() []string {
	if r.IsUnknown() {
		return nil
	}
	return []string{"ROLE_" + r.String()}
}

type TokenType int16

const (
	TokenTypeUnknown TokenType = 0
	TokenTypeBearer  TokenType = 1
)

func (tt TokenType) String() string {
	switch tt {
	case TokenTypeBearer:
		return "Bearer"
	default:
		return "Unknown"
	}
}

// AuthStatus tags how far an authentication attempt has progressed.
type AuthStatus int16

const (
	// AuthStatusUnauthenticated mean no factor has been verified.
	AuthStatusUnauthenticated AuthStatus = 0

	// AuthStatusPartial mean the password step succeeded and an OTP was
	// issued; the attempt carries no authorities yet.
	AuthStatusPartial AuthStatus = 1

	// AuthStatusFull mean both factors cleared and tokens may be issued.
	AuthStatusFull AuthStatus = 2
)

func (as AuthStatus) String() string {
	switch as {
	case AuthStatusPartial:
		return "Partial"
	case AuthStatusFull:
		return "Full"
	default:
		return "Unauthenticated"
	}
}

// CredentialKind selects the verification strategy for a login attempt.
type CredentialKind int16

const (
	CredentialKindUnknown  CredentialKind = 0
	CredentialKindPassword CredentialKind = 1
	CredentialKindOtp      CredentialKind = 2
)

// ClassifyCredential resolves which strategy an attempt belongs to. Exactly
// one of password or otp must be non-empty; anything else is ambiguous and
// must be rejected rather than guessed at.
func ClassifyCredential(password, otp string) (CredentialKind, error) {
	hasPassword := password != ""
	hasOtp := otp != ""

	switch {
	case hasPassword && hasOtp:
		return CredentialKindUnknown, ErrAmbiguousCredential
	case hasPassword:
		return CredentialKindPassword, nil
	case hasOtp:
		return CredentialKindOtp, nil
	default:
		return CredentialKindUnknown, ErrAmbiguousCredential
	}
}
