// Package entity holds the user module's domain types.
package entity

import "time"

// User is an account holder. Password always carries the bcrypt digest,
// never plaintext.
type User struct {
	ID        int64
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccessToken is one row of the active-token allow-list. A token is usable
// while its row exists and has not expired; revocation deletes rows.
type AccessToken struct {
	ID        int64
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ListFilter narrows and pages a user listing.
type ListFilter struct {
	Search string
	Page   int32
	Limit  int32
}

// Offset returns the row offset for the filter's page.
func (f ListFilter) Offset() int32 {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}
