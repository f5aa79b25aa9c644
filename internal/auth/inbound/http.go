package inbound

import (
	"context"

	"github.com/mistauth/mist/internal/auth/usecase"
	"github.com/mistauth/mist/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error
	Check(ctx context.Context) (*usecase.CheckOutput, error)

	UserDetail(ctx context.Context, in usecase.UserDetailInput) (*usecase.UserDetailOutput, error)
	UserEdit(ctx context.Context, in usecase.UserEditInput) (*usecase.UserEditOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Authentication
	r.POST("/api/v1/auth/register", end.Register)
	r.POST("/api/v1/auth/login", end.Login)
	r.POST("/api/v1/auth/refresh", end.RefreshToken)
	r.POST("/api/v1/auth/logout", end.Logout)
	r.GET("/api/v1/auth/check", end.Check) // need authenticated

	// User Profile (need authenticated)
	r.GET("/api/v1/users/:email", end.UserDetail)
	r.PATCH("/api/v1/profile", end.UserEdit)
}
