package db

import (
	"context"

	"github.com/khairicode/storebite/internal/product/entity"
)

// CreateProduct inserts a new product row.
func (s *DB) CreateProduct(ctx context.Context, p entity.Product) (err error) {
	ctx, span := s.startSpan(ctx, "CreateProduct")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO products (id, name, description, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.CreatedAt, p.UpdatedAt)
	return s.mapError(err)
}
