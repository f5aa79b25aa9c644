package usecase

import (
	"context"

	"github.com/mistauth/mist/internal/pkg/goerror"
	"github.com/mistauth/mist/internal/pkg/jwt"
)

type CheckOutput struct {
	Email string
}

// Check is a no-op probe for an authenticated caller; it succeeds only when
// the middleware has already accepted the bearer token.
func (s *Usecase) Check(ctx context.Context) (*CheckOutput, error) {
	_, span := s.startSpan(ctx, "Check")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("authentication required", goerror.CodeUnauthorized)
	}

	return &CheckOutput{Email: clm.Subject}, nil
}
