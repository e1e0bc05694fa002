package usecase

import (
	"context"
	"errors"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
)

type ProductDeleteInput struct {
	// ID is validated as a positive integer at the HTTP boundary.
	ID int64
}

// ProductDelete removes a product. The row is fetched first so the audit log
// can carry a snapshot of what was deleted. A product still referenced by
// dependent rows (order lines) is kept and reported as a conflict.
func (s *Usecase) ProductDelete(ctx context.Context, in ProductDeleteInput) error {
	ctx, span := s.startSpan(ctx, "ProductDelete")
	defer span.End()

	current, err := s.repoDB.GetProduct(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "product not found", "product_id", in.ID)
		return goerror.NewBusiness("Product not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get product", "product_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	err = s.repoDB.DeleteProduct(ctx, in.ID)
	switch {
	case err == nil:
		slog.InfoContext(ctx, "product deleted",
			"product_id", in.ID,
			"deleted", productSnapshot(*current),
		)
		s.repoEvent.ProductDeleted(ctx, in.ID, s.clock.Now())
		return nil
	case errors.Is(err, goerror.ErrNotFound):
		slog.WarnContext(ctx, "product not found", "product_id", in.ID)
		return goerror.NewBusiness("Product not found", goerror.CodeNotFound)
	case errors.Is(err, goerror.ErrReferenced):
		return goerror.NewBusiness("Product is referenced by other records and cannot be deleted", goerror.CodeConflict)
	default:
		slog.ErrorContext(ctx, "failed to repo delete product", "product_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}
}
