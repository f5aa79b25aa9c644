package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/pkg/goerror"
	"github.com/mistauth/mist/internal/pkg/jwt"
)

type UserEditInput struct {
	FirstName  string `validate:"omitempty,min=2,max=50,alphaspace"`
	LastName   string `validate:"omitempty,min=2,max=50,alphaspace"`
	BirthDate  *time.Time
	BirthPlace string `validate:"omitempty,max=100"`
}

type UserEditOutput struct {
	Email      string
	FirstName  string
	LastName   string
	BirthDate  *time.Time
	BirthPlace string
}

// UserEdit applies a partial profile update for the authenticated user. Only
// the fields the caller actually supplied are written.
func (s *Usecase) UserEdit(ctx context.Context, in UserEditInput) (*UserEditOutput, error) {
	ctx, span := s.startSpan(ctx, "UserEdit")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		slog.WarnContext(ctx, "missing authentication claim")
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, clm.Subject)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", clm.Subject)
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	patch := entity.PatchUser{
		ID:         user.ID,
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		BirthDate:  in.BirthDate,
		BirthPlace: in.BirthPlace,
	}

	if err := s.repoDB.UpdateUserProfile(ctx, patch); err != nil {
		slog.ErrorContext(ctx, "failed to repo update user profile", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	out := &UserEditOutput{
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		BirthDate:  user.BirthDate,
		BirthPlace: user.BirthPlace,
	}
	if in.FirstName != "" {
		out.FirstName = in.FirstName
	}
	if in.LastName != "" {
		out.LastName = in.LastName
	}
	if in.BirthDate != nil {
		out.BirthDate = in.BirthDate
	}
	if in.BirthPlace != "" {
		out.BirthPlace = in.BirthPlace
	}

	return out, nil
}
