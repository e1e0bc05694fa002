package usecase

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/user/entity"
)

type UserCreateInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type UserCreateOutput struct {
	User entity.User
}

// UserCreate persists a new user on behalf of an administrator. Unlike
// Register, no token is issued for the new account.
func (s *Usecase) UserCreate(ctx context.Context, in UserCreateInput) (*UserCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "UserCreate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err, "Validation error")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	taken, err := s.repoDB.ExistsUserByEmail(ctx, email, 0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check user email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}
	if taken {
		return nil, goerror.NewFieldError("Validation error", "email", "The email has already been taken.")
	}

	digest, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	user := entity.User{
		ID:        s.uid.Generate(),
		Name:      strings.TrimSpace(in.Name),
		Email:     email,
		Password:  string(digest),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repoDB.CreateUser(ctx, user); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return nil, goerror.NewFieldError("Validation error", "email", "The email has already been taken.")
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "user created",
		"user_id", user.ID,
		"user", userSnapshot(user),
	)

	s.repoEvent.UserCreated(ctx, user)

	return &UserCreateOutput{User: user}, nil
}
