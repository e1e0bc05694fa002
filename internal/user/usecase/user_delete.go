package usecase

import (
	"context"
	"errors"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
)

type UserDeleteInput struct {
	// ID is validated as a positive integer at the HTTP boundary.
	ID int64
}

// UserDelete removes a user. The row is fetched first so the audit log can
// carry a snapshot of what was deleted. The allow-list rows cascade with the
// account; a user referenced by other records (orders) stays and is reported
// as a conflict.
func (s *Usecase) UserDelete(ctx context.Context, in UserDeleteInput) error {
	ctx, span := s.startSpan(ctx, "UserDelete")
	defer span.End()

	current, err := s.repoDB.GetUser(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user not found", "user_id", in.ID)
		return goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user", "user_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	err = s.repoDB.DeleteUser(ctx, in.ID)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "user deleted",
			"user_id", in.ID,
			"deleted", userSnapshot(*current),
		)
		s.repoEvent.UserDeleted(ctx, in.ID)
		return nil
	case errors.Is(err, goerror.ErrNotFound):
		slog.WarnContext(ctx, "user not found", "user_id", in.ID)
		return goerror.NewBusiness("User not found", goerror.CodeNotFound)
	case errors.Is(err, goerror.ErrReferenced):
		return goerror.NewBusiness("User is referenced by other records and cannot be deleted", goerror.CodeConflict)
	default:
		slog.ErrorContext(ctx, "failed to repo delete user", "user_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}
}
