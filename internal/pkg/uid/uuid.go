package uid

import (
	"github.com/google/uuid"
)

// UUID implements StringID using UUID version 7, falling back to version 4
// when v7 generation fails.
type UUID struct{}

// NewUUID returns a UUID-based StringID.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
