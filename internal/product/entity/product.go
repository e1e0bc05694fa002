// Package entity holds the product module's domain types.
package entity

import "time"

// Product is a catalog item.
type Product struct {
	ID          int64
	Name        string
	Description string
	// Price is stored as NUMERIC(8,2); values beyond that range are rejected
	// by the store with a numeric-overflow error.
	Price     float64
	Stock     int32
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListFilter narrows and pages a product listing.
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
