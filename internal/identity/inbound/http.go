package inbound

import (
	"context"

	"github.com/shandysiswandi/artmatch/internal/identity/usecase"
	"github.com/shandysiswandi/artmatch/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)
	Logout(ctx context.Context, in usecase.LogoutInput) error

	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error
	Profile(ctx context.Context) (*usecase.ProfileOutput, error)

	UserCount(ctx context.Context) (int64, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Credentials & sessions
	r.POST("/api/v1/identity/register", end.Register)
	r.POST("/api/v1/identity/login", end.Login)
	r.POST("/api/v1/identity/refresh", end.RefreshToken)
	r.POST("/api/v1/identity/logout", end.Logout) // need authenticated

	// Account (need authenticated)
	r.POST("/api/v1/identity/password/change", end.PasswordChange)
	r.GET("/api/v1/identity/profile", end.Profile)

	// Public stats
	r.GET("/api/v1/identity/users/count", end.UserCount)
}
