package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/pkg/goerror"
	"github.com/mistauth/mist/internal/pkg/idempotency"
)

type RegisterInput struct {
	FirstName  string `validate:"required,min=2,max=50,alphaspace"`
	LastName   string `validate:"required,min=2,max=50,alphaspace"`
	Email      string `validate:"required,email"`
	Password   string `validate:"required,password"`
	BirthDate  *time.Time
	BirthPlace string `validate:"omitempty,max=100"`
	Role       entity.Role
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	role := in.Role.Ensure()
	if role.IsUnknown() {
		role = entity.RoleUser
	}

	var plainCode string
	err := s.idemp.Exec(ctx, "register:"+in.Email, func(ctx context.Context) error {
		_, err := s.repoDB.GetUserByEmail(ctx, in.Email)
		if err == nil {
			return goerror.NewBusiness("email already registered", goerror.CodeConflict)
		}
		if !errors.Is(err, goerror.ErrNotFound) {
			slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
			return goerror.NewServer(err)
		}

		hashedPassword, err := s.bcrypt.Hash(in.Password)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash password", "error", err)
			return goerror.NewServer(err)
		}

		code, err := s.otp.Generate()
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
			return goerror.NewServer(err)
		}

		codeHash, err := s.bcrypt.Hash(code)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash otp code", "error", err)
			return goerror.NewServer(err)
		}

		now := s.clock.Now()
		user := entity.User{
			ID:         s.uid.Generate(),
			Email:      in.Email,
			Password:   string(hashedPassword),
			FirstName:  in.FirstName,
			LastName:   in.LastName,
			BirthDate:  in.BirthDate,
			BirthPlace: in.BirthPlace,
			Role:       role,
		}

		if err := s.repoDB.CreateUserWithOtp(ctx, user, entity.Otp{
			UserID:    user.ID,
			Code:      string(codeHash),
			CreatedAt: now.UnixMilli(),
			ExpiresAt: s.otp.ExpiresAt(now),
		}); err != nil {
			if errors.Is(err, goerror.ErrConflict) {
				return goerror.NewBusiness("email already registered", goerror.CodeConflict)
			}
			slog.ErrorContext(ctx, "failed to repo create user with otp", "email", in.Email, "error", err)
			return goerror.NewServer(err)
		}

		plainCode = code
		return nil
	})
	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		return goerror.NewBusiness("registration already in progress", goerror.CodeConflict)
	}
	if err != nil {
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return err
		}
		slog.ErrorContext(ctx, "failed to guard registration", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	s.sendOtpEmail(ctx, in.Email, plainCode)

	return nil
}
