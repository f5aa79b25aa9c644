package inbound

import (
	"time"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/auth/usecase"
	"github.com/mistauth/mist/internal/pkg/goerror"
	"github.com/mistauth/mist/internal/pkg/router"
)

const dateLayout = "2006-01-02"

// HTTPEndpoint exposes HTTP handlers for the authentication and profile flows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a new account and sends the first one-time code by email.
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Password:   req.Password,
		BirthDate:  birthDate,
		BirthPlace: req.BirthPlace,
		Role:       entity.RoleFromString(req.Role),
	}); err != nil {
		return nil, err
	}

	return RegisterResponse{}, nil
}

// Login verifies either the password or the one-time code. A correct password
// answers with a partial result and a fresh code; a correct code completes the
// flow and answers with tokens.
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Otp:      req.Otp,
	})
	if err != nil {
		return nil, err
	}

	if resp.Status == entity.AuthStatusPartial {
		return PartialLoginResponse{Email: req.Email}, nil
	}

	return LoginResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Authorities:  resp.Authorities,
	}, nil
}

// RefreshToken exchanges the bearer refresh token for a new access token.
func (h *HTTPEndpoint) RefreshToken(r *router.Request) (any, error) {
	resp, err := h.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{
		RefreshToken: r.GetBearerToken(),
	})
	if err != nil {
		return nil, err
	}

	return RefreshTokenResponse{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

// Logout revokes every stored token of the bearer's account.
func (h *HTTPEndpoint) Logout(r *router.Request) (any, error) {
	if err := h.uc.Logout(r.Context(), usecase.LogoutInput{
		AccessToken: r.GetBearerToken(),
	}); err != nil {
		return nil, err
	}

	return LogoutResponse{}, nil
}

// Check confirms the bearer token passed authentication.
func (h *HTTPEndpoint) Check(r *router.Request) (any, error) {
	resp, err := h.uc.Check(r.Context())
	if err != nil {
		return nil, err
	}

	return CheckResponse{Email: resp.Email}, nil
}

// UserDetail returns the profile of the user addressed by email.
func (h *HTTPEndpoint) UserDetail(r *router.Request) (any, error) {
	resp, err := h.uc.UserDetail(r.Context(), usecase.UserDetailInput{
		Email: r.GetParam("email"),
	})
	if err != nil {
		return nil, err
	}

	return UserDetailResponse{
		Email:      resp.Email,
		FirstName:  resp.FirstName,
		LastName:   resp.LastName,
		BirthDate:  formatDate(resp.BirthDate),
		BirthPlace: resp.BirthPlace,
		Role:       resp.Role,
	}, nil
}

// UserEdit partially updates the authenticated user's profile.
func (h *HTTPEndpoint) UserEdit(r *router.Request) (any, error) {
	var req UserEditRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserEdit(r.Context(), usecase.UserEditInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		BirthDate:  birthDate,
		BirthPlace: req.BirthPlace,
	})
	if err != nil {
		return nil, err
	}

	return UserEditResponse{
		Email:      resp.Email,
		FirstName:  resp.FirstName,
		LastName:   resp.LastName,
		BirthDate:  formatDate(resp.BirthDate),
		BirthPlace: resp.BirthPlace,
	}, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, goerror.NewInvalidFormat("birth_date must be formatted as " + dateLayout)
	}

	return &date, nil
}

func formatDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(dateLayout)
}
