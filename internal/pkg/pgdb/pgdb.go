// Package pgdb holds shared PostgreSQL plumbing: pool construction with a
// retried connectivity check, and the translation of driver errors into the
// application's error catalog.
package pgdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/sethvargo/go-retry"
)

// PostgreSQL error codes this application reacts to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNumericOutOfRange   = "22003"
)

// Open builds a pgxpool and verifies connectivity, retrying the ping with
// exponential backoff so the service survives a database that is still
// starting up.
func Open(ctx context.Context, dsn string, pingAttempts uint64) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	backoff := retry.WithMaxRetries(pingAttempts, retry.NewExponential(500*time.Millisecond))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// MapError classifies pgx/pgconn errors under the application's sentinel
// errors, keeping the driver's message for logs and debug-mode detail:
//
//   - no rows                      -> goerror.ErrNotFound
//   - 23505 unique violation      -> goerror.ErrConflict
//   - 23503 foreign key violation -> goerror.ErrReferenced
//   - 22003 numeric out of range  -> goerror.ErrOutOfRange
//
// Other errors pass through unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", goerror.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%w: %v", goerror.ErrConflict, err)
		case codeForeignKeyViolation:
			return fmt.Errorf("%w: %v", goerror.ErrReferenced, err)
		case codeNumericOutOfRange:
			return fmt.Errorf("%w: %v", goerror.ErrOutOfRange, err)
		}
	}

	return err
}
