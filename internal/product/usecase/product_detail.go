package usecase

import (
	"context"
	"errors"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/product/entity"
)

type ProductDetailInput struct {
	// ID is validated as a positive integer at the HTTP boundary.
	ID int64
}

type ProductDetailOutput struct {
	Product entity.Product
}

// ProductDetail fetches a single product by ID.
func (s *Usecase) ProductDetail(ctx context.Context, in ProductDetailInput) (*ProductDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductDetail")
	defer span.End()

	product, err := s.repoDB.GetProduct(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "product not found", "product_id", in.ID)
		return nil, goerror.NewBusiness("Product not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get product", "product_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProductDetailOutput{Product: *product}, nil
}
