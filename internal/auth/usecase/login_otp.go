package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/pkg/goerror"
)

// loginOtp verifies the second factor. Expiry is checked before the code is
// compared, so a correct but stale code never reveals whether it matched. On
// success prior tokens are revoked and a fresh pair is issued.
func (s *Usecase) loginOtp(ctx context.Context, email, code string) (*LoginOutput, error) {
	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", email)
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	rec, err := s.repoDB.GetOtpByUserID(ctx, user.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "otp record not found", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid or expired otp", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get otp by user id", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if s.otp.IsExpired(rec.ExpiresAt, s.clock.Now()) {
		slog.WarnContext(ctx, "otp code is expired", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid or expired otp", goerror.CodeUnauthorized)
	}

	if !s.bcrypt.Verify(rec.Code, code) {
		slog.WarnContext(ctx, "otp code not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid or expired otp", goerror.CodeUnauthorized)
	}

	access, refresh, err := s.issueAndStore(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Status:       entity.AuthStatusFull,
		Authorities:  user.Role.Authorities(),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
