package usecase

import (
	"context"

	"log/slog"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/product/entity"
)

type ProductListInput struct {
	Search string
	Page   int32 `validate:"gte=0"`
	Limit  int32 `validate:"gte=0,lte=100"`
}

type ProductListOutput struct {
	Products []entity.Product
	Total    int64
	Page     int32
	Limit    int32
}

const (
	defaultPage  = 1
	defaultLimit = 20
)

// ProductList returns a page of products, newest first.
func (s *Usecase) ProductList(ctx context.Context, in ProductListInput) (*ProductListOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductList")
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

	products, total, err := s.repoDB.ListProducts(ctx, entity.ListFilter{
		Search: in.Search,
		Page:   in.Page,
		Limit:  in.Limit,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list products", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProductListOutput{
		Products: products,
		Total:    total,
		Page:     in.Page,
		Limit:    in.Limit,
	}, nil
}
