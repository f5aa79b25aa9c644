package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string
	Otp      string
}

type LoginOutput struct {
	Status      entity.AuthStatus
	Authorities []string
	//
	AccessToken  string
	RefreshToken string
}

// Login routes a credential attempt to the matching verification strategy.
// An attempt carries either a password (first factor) or an OTP code (second
// factor), never both; an ambiguous attempt is rejected without touching
// either strategy.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	kind, err := entity.ClassifyCredential(in.Password, in.Otp)
	if err != nil {
		slog.WarnContext(ctx, "ambiguous credential attempt", "email", in.Email)
		return nil, goerror.NewBusiness("supply exactly one of password or otp", goerror.CodeInvalidInput)
	}

	switch kind {
	case entity.CredentialKindPassword:
		return s.loginPassword(ctx, in.Email, in.Password)
	case entity.CredentialKindOtp:
		return s.loginOtp(ctx, in.Email, in.Otp)
	default:
		return nil, goerror.NewBusiness("supply exactly one of password or otp", goerror.CodeInvalidInput)
	}
}

// loginPassword verifies the first factor. On success the user's OTP is
// renewed and emailed, and the result is a partial authentication that
// carries no authorities yet.
func (s *Usecase) loginPassword(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", email)
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid email or password", goerror.CodeUnauthorized)
	}

	if err := s.renewOtp(ctx, user); err != nil {
		return nil, err
	}

	return &LoginOutput{Status: entity.AuthStatusPartial}, nil
}
