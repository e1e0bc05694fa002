package usecase

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/user/entity"
)

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginOutput struct {
	User  entity.User
	Token string
}

// Login verifies credentials and issues a fresh token. All previously issued
// tokens for the user are revoked first, so each successful login leaves
// exactly one active token. A failed attempt revokes nothing.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err, "Validation error")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.repoDB.GetUserByEmail(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "login for unknown email", "email", email)
		return nil, goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password mismatch", "user_id", user.ID)
		return nil, goerror.NewBusiness("Invalid email or password", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.RevokeAllAccessTokens(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "failed to revoke previous tokens", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	token, err := s.issueToken(ctx, *user)
	if err != nil {
		slog.ErrorContext(ctx, "failed to issue access token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	s.repoEvent.UserLoggedIn(ctx, user.ID)

	return &LoginOutput{User: *user, Token: token}, nil
}
