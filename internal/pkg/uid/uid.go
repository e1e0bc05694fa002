// Package uid provides identifier generators used across modules: random
// string identifiers (UUID) and sortable numeric identifiers (snowflake).
package uid

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}

// NumberID generates unique numeric identifiers.
type NumberID interface {
	Generate() int64
}
