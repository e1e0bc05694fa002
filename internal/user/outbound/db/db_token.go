package db

import (
	"context"

	"github.com/khairicode/storebite/internal/user/entity"
)

// CreateAccessToken registers an issued token in the allow-list.
func (s *DB) CreateAccessToken(ctx context.Context, t entity.AccessToken) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAccessToken")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO user_access_tokens (id, user_id, token_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err = s.conn.Exec(ctx, query, t.ID, t.UserID, t.TokenID, t.ExpiresAt, t.CreatedAt)
	return s.mapError(err)
}

// IsActive reports whether the token ID is still allow-listed and unexpired.
// It backs the authentication middleware's revocation check.
func (s *DB) IsActive(ctx context.Context, tokenID string) (active bool, err error) {
	ctx, span := s.startSpan(ctx, "IsActive")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT EXISTS (
			SELECT 1 FROM user_access_tokens
			WHERE token_id = $1 AND expires_at > NOW()
		)`

	if err = s.conn.QueryRow(ctx, query, tokenID).Scan(&active); err != nil {
		return false, s.mapError(err)
	}
	return active, nil
}

// RevokeAllAccessTokens deletes every allow-list row of the user, rendering
// all previously issued tokens unusable immediately.
func (s *DB) RevokeAllAccessTokens(ctx context.Context, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "RevokeAllAccessTokens")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM user_access_tokens WHERE user_id = $1`, userID)
	return s.mapError(err)
}
