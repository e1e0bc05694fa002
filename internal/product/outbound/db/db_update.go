package db

import (
	"context"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/product/entity"
)

// UpdateProduct writes the full row state for the product.
func (s *DB) UpdateProduct(ctx context.Context, p entity.Product) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateProduct")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5, updated_at = $6
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.UpdatedAt)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
