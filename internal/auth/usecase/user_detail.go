package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mistauth/mist/internal/pkg/goerror"
)

type UserDetailInput struct {
	Email string `validate:"required,email"`
}

type UserDetailOutput struct {
	Email      string
	FirstName  string
	LastName   string
	BirthDate  *time.Time
	BirthPlace string
	Role       string
}

func (s *Usecase) UserDetail(ctx context.Context, in UserDetailInput) (*UserDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "UserDetail")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserDetailOutput{
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		BirthDate:  user.BirthDate,
		BirthPlace: user.BirthPlace,
		Role:       user.Role.String(),
	}, nil
}
