// Package inbound exposes the user module over HTTP.
package inbound

import (
	"context"
	"net/http"

	"github.com/khairicode/storebite/internal/pkg/router"
	"github.com/khairicode/storebite/internal/user/usecase"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	UserList(ctx context.Context, in usecase.UserListInput) (*usecase.UserListOutput, error)
	UserDetail(ctx context.Context, in usecase.UserDetailInput) (*usecase.UserDetailOutput, error)
	UserCreate(ctx context.Context, in usecase.UserCreateInput) (*usecase.UserCreateOutput, error)
	UserUpdate(ctx context.Context, in usecase.UserUpdateInput) (*usecase.UserUpdateOutput, error)
	UserDelete(ctx context.Context, in usecase.UserDeleteInput) error
}

// RegisterHTTPEndpoint mounts the auth and user-directory routes.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/register", end.Register)
	r.POST("/api/v1/login", end.Login)

	// User directory, authenticated.
	r.GET("/api/v1/users", end.List)
	r.POST("/api/v1/users", end.Create)
	r.GET("/api/v1/users/:id", end.Detail)
	r.PUT("/api/v1/users/:id", end.Update)
	r.DELETE("/api/v1/users/:id", end.Delete)
}

// PublicEndpoints lists the auth routes that skip authentication.
func PublicEndpoints() map[string]map[string]struct{} {
	return map[string]map[string]struct{}{
		http.MethodPost: {
			"/api/v1/register": {},
			"/api/v1/login":    {},
		},
	}
}
