package usecase

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/product/entity"
)

// productSnapshot is the audit-log view of a product.
func productSnapshot(p entity.Product) map[string]any {
	return map[string]any{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"stock":       p.Stock,
	}
}

// ProductUpdateInput carries partial updates: nil pointers mean "leave as is".
type ProductUpdateInput struct {
	ID          int64    `json:"-" validate:"required,gt=0"`
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int32   `json:"stock" validate:"omitempty,gte=0"`
}

type ProductUpdateOutput struct {
	Product entity.Product
}

// ProductUpdate applies a partial update. The uniqueness check excludes the
// product itself, so re-submitting the current name succeeds.
func (s *Usecase) ProductUpdate(ctx context.Context, in ProductUpdateInput) (*ProductUpdateOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductUpdate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err, "Validation error")
	}

	current, err := s.repoDB.GetProduct(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "product not found", "product_id", in.ID)
		return nil, goerror.NewBusiness("Product not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get product", "product_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	before := *current

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)

		taken, err := s.repoDB.ExistsProductByName(ctx, name, in.ID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo check product name", "name", name, "error", err)
			return nil, goerror.NewServer(err)
		}
		if taken {
			return nil, goerror.NewFieldError("Validation error", "name", "The name has already been taken.")
		}

		current.Name = name
	}
	if in.Description != nil {
		current.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		current.Price = *in.Price
	}
	if in.Stock != nil {
		current.Stock = *in.Stock
	}
	current.UpdatedAt = s.clock.Now()

	if err := s.repoDB.UpdateProduct(ctx, *current); err != nil {
		switch {
		case errors.Is(err, goerror.ErrNotFound):
			return nil, goerror.NewBusiness("Product not found", goerror.CodeNotFound)
		case errors.Is(err, goerror.ErrConflict):
			return nil, goerror.NewFieldError("Validation error", "name", "The name has already been taken.")
		case errors.Is(err, goerror.ErrOutOfRange):
			return nil, goerror.NewOutOfRange(err, "The price value is out of the allowed range")
		default:
			slog.ErrorContext(ctx, "failed to repo update product", "product_id", in.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	slog.InfoContext(ctx, "product updated",
		"product_id", current.ID,
		"before", productSnapshot(before),
		"after", productSnapshot(*current),
	)

	s.repoEvent.ProductUpdated(ctx, *current)

	return &ProductUpdateOutput{Product: *current}, nil
}
