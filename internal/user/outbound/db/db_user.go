package db

import (
	"context"

	"github.com/khairicode/storebite/internal/pkg/goerror"
	"github.com/khairicode/storebite/internal/user/entity"
)

const userColumns = `id, name, email, password, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser fetches one user by ID.
func (s *DB) GetUser(ctx context.Context, id int64) (u *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUser")
	defer func() { s.endSpan(span, err) }()

	u, err = scanUser(s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

// GetUserByEmail fetches one user by email.
func (s *DB) GetUserByEmail(ctx context.Context, email string) (u *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	u, err = scanUser(s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, s.mapError(err)
	}
	return u, nil
}

// ListUsers returns a page of users plus the unpaged total.
func (s *DB) ListUsers(ctx context.Context, f entity.ListFilter) (users []entity.User, total int64, err error) {
	ctx, span := s.startSpan(ctx, "ListUsers")
	defer func() { s.endSpan(span, err) }()

	const countQuery = `
		SELECT COUNT(*)
		FROM users
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')`

	if err = s.conn.QueryRow(ctx, countQuery, f.Search).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	const listQuery = `
		SELECT ` + userColumns + `
		FROM users
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := s.conn.Query(ctx, listQuery, f.Search, f.Limit, f.Offset())
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	users = make([]entity.User, 0, f.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, s.mapError(err)
		}
		users = append(users, *u)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return users, total, nil
}

// ExistsUserByEmail reports whether a different user already uses email.
// Passing excludeID 0 checks all rows.
func (s *DB) ExistsUserByEmail(ctx context.Context, email string, excludeID int64) (exists bool, err error) {
	ctx, span := s.startSpan(ctx, "ExistsUserByEmail")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE email = $1 AND ($2 = 0 OR id <> $2)
		)`

	if err = s.conn.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, s.mapError(err)
	}
	return exists, nil
}

// CreateUser inserts a new user row.
func (s *DB) CreateUser(ctx context.Context, u entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO users (id, name, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.conn.Exec(ctx, query, u.ID, u.Name, u.Email, u.Password, u.CreatedAt, u.UpdatedAt)
	return s.mapError(err)
}

// UpdateUser writes the full row state for the user.
func (s *DB) UpdateUser(ctx context.Context, u entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUser")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE users
		SET name = $2, email = $3, password = $4, updated_at = $5
		WHERE id = $1`

	tag, err := s.conn.Exec(ctx, query, u.ID, u.Name, u.Email, u.Password, u.UpdatedAt)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}

// DeleteUser removes a user row. Allow-list rows cascade with the account.
func (s *DB) DeleteUser(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteUser")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return goerror.ErrNotFound
	}
	return nil
}
