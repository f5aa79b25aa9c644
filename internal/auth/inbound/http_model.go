package inbound

import "net/http"

type RegisterRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	BirthDate  string `json:"birth_date,omitempty"`
	BirthPlace string `json:"birth_place,omitempty"`
	Role       string `json:"role,omitempty"`
}

type RegisterResponse struct{}

func (RegisterResponse) Message() string {
	return "Registration successful. Please check your email for the verification code."
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Otp      string `json:"otp,omitempty"`
}

type LoginResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	Authorities  []string `json:"authorities"`
}

// PartialLoginResponse answers a successful password step. The login is not
// complete until the emailed code is verified, which the 206 status signals.
type PartialLoginResponse struct {
	Email string `json:"email"`
}

func (PartialLoginResponse) StatusCode() int {
	return http.StatusPartialContent
}

func (PartialLoginResponse) Message() string {
	return "Password verified. Please check your email for the verification code."
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutResponse struct{}

func (LogoutResponse) Message() string {
	return "Logout successful."
}

type CheckResponse struct {
	Email string `json:"email"`
}

type UserDetailResponse struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date,omitempty"`
	BirthPlace string `json:"birth_place,omitempty"`
	Role       string `json:"role"`
}

type UserEditRequest struct {
	FirstName  string `json:"first_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`
	BirthDate  string `json:"birth_date,omitempty"`
	BirthPlace string `json:"birth_place,omitempty"`
}

type UserEditResponse struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date,omitempty"`
	BirthPlace string `json:"birth_place,omitempty"`
}
