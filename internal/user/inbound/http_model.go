package inbound

import (
	"net/http"
	"time"

	"github.com/khairicode/storebite/internal/user/entity"
)

// RegisterRequest is the payload for POST /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUserRequest is the payload for POST /users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is the payload for PUT /users/:id. Absent fields are
// left unchanged.
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// UserResponse is the JSON view of a user. The password digest is never
// serialized.
type UserResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ListUsersResponse is the JSON view of a user listing page.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
	Page  int32          `json:"page"`
	Limit int32          `json:"limit"`
}

// AuthResponse carries the issued token together with the account.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RegisteredResponse wraps a successful registration so the endpoint
// responds with 201.
type RegisteredResponse struct {
	AuthResponse
}

// StatusCode marks the response as 201 Created.
func (RegisteredResponse) StatusCode() int { return http.StatusCreated }

// Message describes the outcome.
func (RegisteredResponse) Message() string { return "Account registered successfully" }

// CreatedUserResponse wraps an admin-created user so the endpoint responds
// with 201.
type CreatedUserResponse struct {
	UserResponse
}

// StatusCode marks the response as 201 Created.
func (CreatedUserResponse) StatusCode() int { return http.StatusCreated }

// Message describes the outcome.
func (CreatedUserResponse) Message() string { return "User created successfully" }
