package inbound

import (
	"github.com/khairicode/storebite/internal/pkg/router"
	"github.com/khairicode/storebite/internal/user/entity"
	"github.com/khairicode/storebite/internal/user/usecase"
	"github.com/samber/lo"
)

// HTTPEndpoint exposes HTTP handlers for authentication and the user
// directory.
type HTTPEndpoint struct {
	uc uc
}

// Register creates an account and signs the new user in.
// @Summary Register account
// @Tags User, Authentication
// @Accept json
// @Produce json
// @Success 201 {object} AuthResponse
// @Failure 422 "Validation error"
// @Router /api/v1/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return RegisteredResponse{AuthResponse: AuthResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	}}, nil
}

// Login authenticates a user and issues a fresh token.
// @Summary Authenticate user
// @Tags User, Authentication
// @Accept json
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 "Invalid credentials"
// @Failure 422 "Validation error"
// @Router /api/v1/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return AuthResponse{
		Token: resp.Token,
		User:  toUserResponse(resp.User),
	}, nil
}

// List returns a page of users.
// @Summary List users
// @Tags User
// @Produce json
// @Success 200 {object} ListUsersResponse
// @Router /api/v1/users [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserList(r.Context(), usecase.UserListInput{
		Search: r.GetQuery("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return ListUsersResponse{
		Users: lo.Map(resp.Users, func(u entity.User, _ int) UserResponse {
			return toUserResponse(u)
		}),
		Total: resp.Total,
		Page:  resp.Page,
		Limit: resp.Limit,
	}, nil
}

// Detail returns one user by its identifier.
// @Summary Get user detail
// @Tags User
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 404 "User not found"
// @Router /api/v1/users/{id} [get]
func (h *HTTPEndpoint) Detail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserDetail(r.Context(), usecase.UserDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toUserResponse(resp.User), nil
}

// Create persists a new user without signing them in.
// @Summary Create user
// @Tags User
// @Accept json
// @Produce json
// @Success 201 {object} UserResponse
// @Failure 422 "Validation error"
// @Router /api/v1/users [post]
func (h *HTTPEndpoint) Create(r *router.Request) (any, error) {
	var req CreateUserRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.UserCreate(r.Context(), usecase.UserCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return CreatedUserResponse{UserResponse: toUserResponse(resp.User)}, nil
}

// Update applies a partial update to a user.
// @Summary Update user
// @Tags User
// @Accept json
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 404 "User not found"
// @Failure 422 "Validation error"
// @Router /api/v1/users/{id} [put]
func (h *HTTPEndpoint) Update(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req UpdateUserRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.UserUpdate(r.Context(), usecase.UserUpdateInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return toUserResponse(resp.User), nil
}

// Delete removes a user account.
// @Summary Delete user
// @Tags User
// @Produce json
// @Failure 404 "User not found"
// @Failure 409 "User referenced elsewhere"
// @Router /api/v1/users/{id} [delete]
func (h *HTTPEndpoint) Delete(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	if err := h.uc.UserDelete(r.Context(), usecase.UserDeleteInput{ID: id}); err != nil {
		return nil, err
	}

	return router.Ack("User deleted successfully"), nil
}
