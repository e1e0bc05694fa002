package db

import (
	"context"

	"github.com/khairicode/storebite/internal/pkg/goerror"
)

// DeleteProduct removes a product row. Rows referenced by order lines fail
// with the referential-constraint error from the store.
func (s *DB) DeleteProduct(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteProduct")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}

	return nil
}
