package usecase

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/user/entity"
)

// userSnapshot is the audit-log view of a user. The password digest is never
// part of it.
func userSnapshot(u entity.User) map[string]any {
	return map[string]any{
		"name":  u.Name,
		"email": u.Email,
	}
}

// UserUpdateInput carries partial updates: nil pointers mean "leave as is".
type UserUpdateInput struct {
	ID       int64   `json:"-" validate:"required,gt=0"`
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

type UserUpdateOutput struct {
	User entity.User
}

// UserUpdate applies a partial update. The email uniqueness check excludes
// the user itself, so re-submitting the current email succeeds. A changed
// password is re-hashed before storage.
func (s *Usecase) UserUpdate(ctx context.Context, in UserUpdateInput) (*UserUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "UserUpdate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err, "Validation error")
	}

	current, err := s.repoDB.GetUser(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user not found", "user_id", in.ID)
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user", "user_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	before := *current

	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))

		taken, err := s.repoDB.ExistsUserByEmail(ctx, email, in.ID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo check user email", "email", email, "error", err)
			return nil, goerror.NewServer(err)
		}
		if taken {
			return nil, goerror.NewFieldError("Validation error", "email", "The email has already been taken.")
		}

		current.Email = email
	}
	if in.Name != nil {
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Password != nil {
		digest, err := s.bcrypt.Hash(*in.Password)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash password", "error", err)
			return nil, goerror.NewServer(err)
		}
		current.Password = string(digest)
	}
	current.UpdatedAt = s.clock.Now()

	if err := s.repoDB.UpdateUser(ctx, *current); err != nil {
		switch {
		case errors.Is(err, goerror.ErrNotFound):
			return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
		case errors.Is(err, goerror.ErrConflict):
			return nil, goerror.NewFieldError("Validation error", "email", "The email has already been taken.")
		default:
			slog.ErrorContext(ctx, "failed to repo update user", "user_id", in.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	slog.InfoContext(ctx, "user updated",
		"user_id", current.ID,
		"before", userSnapshot(before),
		"after", userSnapshot(*current),
	)

	s.repoEvent.UserUpdated(ctx, *current)

	return &UserUpdateOutput{User: *current}, nil
}
