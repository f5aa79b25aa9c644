package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mistauth/mist/internal/pkg/goerror"
)

type LogoutInput struct {
	AccessToken string `validate:"required"`
}

// Logout revokes every valid token for the user resolved from the presented
// access token. Revocation is a bulk flag flip, so calling it again for the
// same user is a no-op.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	claims, err := s.jwt.Verify(in.AccessToken)
	if err != nil {
		slog.WarnContext(ctx, "access token verification failed", "error", err)
		return goerror.NewBusiness("invalid or expired token", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, claims.Subject)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", claims.Subject)
		return goerror.NewBusiness("invalid or expired token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", claims.Subject, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.RevokeAllUserTokens(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo revoke all user tokens", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
