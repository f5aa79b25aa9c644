package inbound

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mistauth/mist/internal/auth/entity"
	"github.com/mistauth/mist/internal/auth/usecase"
	"github.com/mistauth/mist/internal/pkg/router"
)

type fakeUC struct {
	loginOut   *usecase.LoginOutput
	loginIn    usecase.LoginInput
	registerIn usecase.RegisterInput
	refreshIn  usecase.RefreshTokenInput
	logoutIn   usecase.LogoutInput
}

func (f *fakeUC) Register(_ context.Context, in usecase.RegisterInput) error {
	f.registerIn = in
	return nil
}

func (f *fakeUC) Login(_ context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error) {
	f.loginIn = in
	return f.loginOut, nil
}

func (f *fakeUC) RefreshToken(_ context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	f.refreshIn = in
	return &usecase.RefreshTokenOutput{AccessToken: "new-access", RefreshToken: in.RefreshToken}, nil
}

func (f *fakeUC) Logout(_ context.Context, in usecase.LogoutInput) error {
	f.logoutIn = in
	return nil
}

func (f *fakeUC) Check(context.Context) (*usecase.CheckOutput, error) {
	return &usecase.CheckOutput{Email: "jane@example.com"}, nil
}

func (f *fakeUC) UserDetail(_ context.Context, in usecase.UserDetailInput) (*usecase.UserDetailOutput, error) {
	return &usecase.UserDetailOutput{Email: in.Email, Role: "USER"}, nil
}

func (f *fakeUC) UserEdit(_ context.Context, in usecase.UserEditInput) (*usecase.UserEditOutput, error) {
	return &usecase.UserEditOutput{Email: "jane@example.com", FirstName: in.FirstName}, nil
}

func newRequest(method, body string) *router.Request {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	return &router.Request{Request: req}
}

func TestLoginResponseSelection(t *testing.T) {
	t.Run("PartialMapsTo206", func(t *testing.T) {
		// Arrange
		end := &HTTPEndpoint{uc: &fakeUC{loginOut: &usecase.LoginOutput{Status: entity.AuthStatusPartial}}}

		// Act
		resp, err := end.Login(newRequest(http.MethodPost, `{"email":"jane@example.com","password":"hunter22"}`))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		partial, ok := resp.(PartialLoginResponse)
		if !ok {
			t.Fatalf("expected PartialLoginResponse, got %T", resp)
		}
		if partial.StatusCode() != http.StatusPartialContent {
			t.Fatalf("expected 206 status hook, got %d", partial.StatusCode())
		}
	})

	t.Run("FullCarriesTokens", func(t *testing.T) {
		// Arrange
		end := &HTTPEndpoint{uc: &fakeUC{loginOut: &usecase.LoginOutput{
			Status:       entity.AuthStatusFull,
			Authorities:  []string{"ROLE_USER"},
			AccessToken:  "acc",
			RefreshToken: "ref",
		}}}

		// Act
		resp, err := end.Login(newRequest(http.MethodPost, `{"email":"jane@example.com","otp":"1234"}`))

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		full, ok := resp.(LoginResponse)
		if !ok {
			t.Fatalf("expected LoginResponse, got %T", resp)
		}
		if full.AccessToken != "acc" || full.RefreshToken != "ref" {
			t.Fatalf("unexpected tokens %+v", full)
		}
	})
}

func TestRegisterParsesBirthDate(t *testing.T) {
	// Arrange
	uc := &fakeUC{}
	end := &HTTPEndpoint{uc: uc}
	body := `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","password":"hunter22","birth_date":"1990-04-12","role":"ADMIN"}`

	// Act
	_, err := end.Register(newRequest(http.MethodPost, body))

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.registerIn.BirthDate == nil {
		t.Fatal("expected birth date parsed")
	}
	want := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	if !uc.registerIn.BirthDate.Equal(want) {
		t.Fatalf("expected %v, got %v", want, uc.registerIn.BirthDate)
	}
	if uc.registerIn.Role != entity.RoleAdmin {
		t.Fatalf("expected role ADMIN, got %v", uc.registerIn.Role)
	}
}

func TestRegisterRejectsBadBirthDate(t *testing.T) {
	// Arrange
	end := &HTTPEndpoint{uc: &fakeUC{}}
	body := `{"first_name":"Jane","last_name":"Doe","email":"jane@example.com","password":"hunter22","birth_date":"12/04/1990"}`

	// Act
	_, err := end.Register(newRequest(http.MethodPost, body))

	// Assert
	if err == nil {
		t.Fatal("expected an error for an unsupported date format")
	}
}

func TestRefreshReadsBearerHeader(t *testing.T) {
	// Arrange
	uc := &fakeUC{}
	end := &HTTPEndpoint{uc: uc}

	req := newRequest(http.MethodPost, "")
	req.Header.Set("Authorization", "Bearer the-refresh-token")

	// Act
	resp, err := end.RefreshToken(req)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.refreshIn.RefreshToken != "the-refresh-token" {
		t.Fatalf("expected bearer token forwarded, got %q", uc.refreshIn.RefreshToken)
	}
	out, ok := resp.(RefreshTokenResponse)
	if !ok {
		t.Fatalf("expected RefreshTokenResponse, got %T", resp)
	}
	if out.RefreshToken != "the-refresh-token" {
		t.Fatalf("expected refresh token unchanged, got %q", out.RefreshToken)
	}
}

func TestLogoutReadsBearerHeader(t *testing.T) {
	// Arrange
	uc := &fakeUC{}
	end := &HTTPEndpoint{uc: uc}

	req := newRequest(http.MethodPost, "")
	req.Header.Set("Authorization", "Bearer the-access-token")

	// Act
	_, err := end.Logout(req)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.logoutIn.AccessToken != "the-access-token" {
		t.Fatalf("expected bearer token forwarded, got %q", uc.logoutIn.AccessToken)
	}
}
