package entity

import (
	"errors"
	"testing"
)

func TestClassifyCredential(t *testing.T) {
	tests := []struct {
		name     string
		password string
		otp      string
		want     CredentialKind
		wantErr  bool
	}{
		{name: "PasswordOnly", password: "hunter2", want: CredentialKindPassword},
		{name: "OtpOnly", otp: "1234", want: CredentialKindOtp},
		{name: "Both", password: "hunter2", otp: "1234", want: CredentialKindUnknown, wantErr: true},
		{name: "Neither", want: CredentialKindUnknown, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ClassifyCredential(tt.password, tt.otp)

			if tt.wantErr {
				if !errors.Is(err, ErrAmbiguousCredential) {
					t.Fatalf("expected ErrAmbiguousCredential, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if kind != tt.want {
				t.Fatalf("ClassifyCredential() = %v, want %v", kind, tt.want)
			}
		})
	}
}

func TestRoleFromString(t *testing.T) {
	if RoleFromString("USER") != RoleUser {
		t.Fatal("expected USER to map to RoleUser")
	}
	if RoleFromString("ADMIN") != RoleAdmin {
		t.Fatal("expected ADMIN to map to RoleAdmin")
	}
	if RoleFromString("root") != RoleUnknown {
		t.Fatal("expected unrecognized role to map to RoleUnknown")
	}
}

func TestRoleAuthorities(t *testing.T) {
	// Arrange & Act
	userAuth := RoleUser.Authorities()
	adminAuth := RoleAdmin.Authorities()
	unknownAuth := RoleUnknown.Authorities()

	// Assert
	if len(userAuth) != 1 || userAuth[0] != "ROLE_USER" {
		t.Fatalf("unexpected user authorities %v", userAuth)
	}
	if len(adminAuth) != 1 || adminAuth[0] != "ROLE_ADMIN" {
		t.Fatalf("unexpected admin authorities %v", adminAuth)
	}
	if unknownAuth != nil {
		t.Fatalf("expected no authorities for unknown role, got %v", unknownAuth)
	}
}

func TestRoleEnsure(t *testing.T) {
	if Role(99).Ensure() != RoleUnknown {
		t.Fatal("expected out-of-range role to normalize to RoleUnknown")
	}
	if RoleAdmin.Ensure() != RoleAdmin {
		t.Fatal("expected known role to pass through Ensure")
	}
}
