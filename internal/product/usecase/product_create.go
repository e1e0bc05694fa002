package usecase

import (
	"context"
	"errors"
	"strings"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/product/entity"
)

// ProductCreateInput uses pointers for the numeric fields so "absent" and
// "zero" stay distinguishable: a free product (price 0) is valid, while an
// omitted price or stock fails the required rule.
type ProductCreateInput struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"max=1000"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int32   `json:"stock" validate:"required,gte=0"`
}

type ProductCreateOutput struct {
	Product entity.Product
}

// ProductCreate validates the input, enforces name uniqueness, and persists a
// new product. A duplicate name surfaces as a field-level validation error so
// the client sees it under errors.name, same as any other rule failure.
func (s *Usecase) ProductCreate(ctx context.Context, in ProductCreateInput) (*ProductCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductCreate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err, "Validation error")
	}

	name := strings.TrimSpace(in.Name)

	taken, err := s.repoDB.ExistsProductByName(ctx, name, 0)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo check product name", "name", name, "error", err)
		return nil, goerror.NewServer(err)
	}
	if taken {
		return nil, goerror.NewFieldError("Validation error", "name", "The name has already been taken.")
	}

	now := s.clock.Now()
	product := entity.Product{
		ID:          s.uid.Generate(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		Stock:       *in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repoDB.CreateProduct(ctx, product); err != nil {
		switch {
		case errors.Is(err, goerror.ErrConflict):
			// Raced another create with the same name.
			return nil, goerror.NewFieldError("Validation error", "name", "The name has already been taken.")
		case errors.Is(err, goerror.ErrOutOfRange):
			return nil, goerror.NewOutOfRange(err, "The price value is out of the allowed range")
		default:
			slog.ErrorContext(ctx, "failed to repo create product", "name", name, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	slog.InfoContext(ctx, "product created",
		"product_id", product.ID,
		"product", productSnapshot(product),
	)

	s.repoEvent.ProductCreated(ctx, product)

	return &ProductCreateOutput{Product: product}, nil
}
