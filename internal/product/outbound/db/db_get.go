package db

import (
	"context"

	"github.com/khairicode/storebite/internal/product/entity"
)

// GetProduct fetches one product by ID.
func (s *DB) GetProduct(ctx context.Context, id int64) (p *entity.Product, err error) {
	ctx, span := s.startSpan(ctx, "GetProduct")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, name, description, price, stock, created_at, updated_at
		FROM products
		WHERE id = $1`

	var out entity.Product
	err = s.conn.QueryRow(ctx, query, id).Scan(
		&out.ID,
		&out.Name,
		&out.Description,
		&out.Price,
		&out.Stock,
		&out.CreatedAt,
		&out.UpdatedAt,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

// ListProducts returns a page of products plus the unpaged total.
func (s *DB) ListProducts(ctx context.Context, f entity.ListFilter) (products []entity.Product, total int64, err error) {
	ctx, span := s.startSpan(ctx, "ListProducts")
	defer func() { s.endSpan(span, err) }()

	const countQuery = `
		SELECT COUNT(*)
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')`

	if err = s.conn.QueryRow(ctx, countQuery, f.Search).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	const listQuery = `
		SELECT id, name, description, price, stock, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.conn.Query(ctx, listQuery, f.Search, f.Limit, f.Offset())
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	products = make([]entity.Product, 0, f.Limit)
	for rows.Next() {
		var p entity.Product
		if err = rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, s.mapError(err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return products, total, nil
}

// ExistsProductByName reports whether a different product already uses name.
// Passing excludeID 0 checks all rows.
func (s *DB) ExistsProductByName(ctx context.Context, name string, excludeID int64) (exists bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsProductByName")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT EXISTS (
			SELECT 1 FROM products
			WHERE name = $1 AND ($2 = 0 OR id <> $2)
		)`

	if err = s.conn.QueryRow(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}

	return exists, nil
}
