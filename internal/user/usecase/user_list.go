package usecase

import (
	"context"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/user/entity"
)

type UserListInput struct {
	Search string
	Page   int32 `validate:"gte=0"`
	Limit  int32 `validate:"gte=0,lte=100"`
}

type UserListOutput struct {
	Users []entity.User
	Total int64
	Page  int32
	Limit int32
}

const (
	defaultPage  = 1
	defaultLimit = 20
)

// UserList returns a page of users, newest first.
func (s *Usecase) UserList(ctx context.Context, in UserListInput) (*UserListOutput, error) {
	ctx, span := s.startSpan(ctx, "UserList")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err, "Validation error")
	}

	if in.Page <= 0 {
		in.Page = defaultPage
	}
	if in.Limit <= 0 {
		in.Limit = defaultLimit
	}

	users, total, err := s.repoDB.ListUsers(ctx, entity.ListFilter{
		Search: in.Search,
		Page:   in.Page,
		Limit:  in.Limit,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list users", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &UserListOutput{Users: users, Total: total, Page: in.Page, Limit: in.Limit}, nil
}
