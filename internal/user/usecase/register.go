package usecase

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/pkg/idempotency"
	"github.com/khairicode/storebite/internal/user/entity"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type RegisterOutput struct {
	User  entity.User
	Token string
}

// Register creates an account and signs the new user in. The plaintext
// password is hashed before anything touches the store. Concurrent retries
// with the same email are collapsed by the idempotency guard.
func (s *Usecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	ctx, span := s.startSpan(ctx, "Register")
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

	createUser := func(ctx context.Context) error {
		return s.repoDB.CreateUser(ctx, user)
	}

	err = s.idempotency.Exec(ctx, "user:register:"+email, createUser)
	switch {
	case err == nil:
	case errors.Is(err, goerror.ErrConflict),
		errors.Is(err, idempotency.ErrInProgress),
		errors.Is(err, idempotency.ErrCompleted):
		return nil, goerror.NewFieldError("Validation error", "email", "The email has already been taken.")
	default:
		slog.ErrorContext(ctx, "failed to repo create user", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "user registered",
		"user_id", user.ID,
		"user", userSnapshot(user),
	)

	s.repoEvent.UserRegistered(ctx, user)

	return &RegisterOutput{User: user, Token: token}, nil
}
