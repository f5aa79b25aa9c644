package usecase

import (
	"context"
	"log/slog"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/pkg/goerror"
)

// issueAndStore mints a fresh token pair and swaps the user's persisted token
// set for the new access token in one transaction: all previously valid
// tokens are revoked, and the new access token is stored with both flags
// clear. The refresh token is handed back to the caller but never persisted;
// only access tokens are tracked for revocation.
func (s *Usecase) issueAndStore(ctx context.Context, user *entity.User) (access, refresh string, err error) {
	access, err = s.jwt.GenerateAccess(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access token", "user_id", user.ID, "error", err)
		return "", "", goerror.NewServer(err)
	}

	refresh, err = s.jwt.GenerateRefresh(user.ID, user.Email)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate refresh token", "user_id", user.ID, "error", err)
		return "", "", goerror.NewServer(err)
	}

	if err := s.repoDB.ReplaceUserTokens(ctx, user.ID, entity.Token{
		ID:     s.uid.Generate(),
		UserID: user.ID,
		Token:  access,
		Type:   entity.TokenTypeBearer,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace user tokens", "user_id", user.ID, "error", err)
		return "", "", goerror.NewServer(err)
	}

	return access, refresh, nil
}

// renewOtp overwrites the user's single OTP row with a freshly generated
// code and emails the plaintext out of band. Email delivery is fire and
// forget; the new code is already persisted, so a lost email just means the
// user repeats the password step.
func (s *Usecase) renewOtp(ctx context.Context, user *entity.User) error {
	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.bcrypt.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	now := s.clock.Now()
	if err := s.repoDB.RenewOtp(ctx, entity.Otp{
		UserID:    user.ID,
		Code:      string(codeHash),
		CreatedAt: now.UnixMilli(),
		ExpiresAt: s.otp.ExpiresAt(now),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo renew otp", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	s.sendOtpEmail(ctx, user.Email, code)

	return nil
}

func (s *Usecase) sendOtpEmail(ctx context.Context, email, code string) {
	s.goroutine.Go(context.WithoutCancel(ctx), func(ctx context.Context) error {
		if err := s.repoNotifier.SendOtpEmail(ctx, email, code); err != nil {
			slog.ErrorContext(ctx, "failed to send otp email", "email", email, "error", err)
		}
		return nil
	})
}
