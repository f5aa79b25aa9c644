package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/pkg/goerror"
)

type RefreshTokenInput struct {
	RefreshToken string `validate:"required"`
}

type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshToken exchanges a valid refresh token for a new access token. The
// refresh token itself is returned unchanged; only access tokens are rotated
// and tracked in storage.
func (s *Usecase) RefreshToken(ctx context.Context, in RefreshTokenInput) (*RefreshTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "RefreshToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	claims, err := s.jwt.Verify(in.RefreshToken)
	if err != nil {
		slog.WarnContext(ctx, "refresh token verification failed", "error", err)
		return nil, goerror.NewBusiness("invalid or expired refresh token", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, claims.Subject)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", claims.Subject)
		return nil, goerror.NewBusiness("invalid or expired refresh token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", claims.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	access, err := s.jwt.GenerateAccess(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.ReplaceUserTokens(ctx, user.ID, entity.Token{
		ID:     s.uid.Generate(),
		UserID: user.ID,
		Token:  access,
		Type:   entity.TokenTypeBearer,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace user tokens", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RefreshTokenOutput{
		AccessToken:  access,
		RefreshToken: in.RefreshToken,
	}, nil
}
