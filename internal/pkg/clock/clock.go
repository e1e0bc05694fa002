// Package clock abstracts time retrieval so use cases can be tested with a
// fixed moment in time.
package clock

import "time"

// Clocker returns the current time.
type Clocker interface {
	Now() time.Time
}

// Clock implements Clocker using the wall clock in UTC.
type Clock struct{}

// New returns a wall-clock Clocker.
func New() *Clock {
	return &Clock{}
}

// Now returns the current time in UTC.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}

// Fixed implements Clocker with a constant time, for tests.
type Fixed struct {
	T time.Time
}

// Now returns the fixed time.
func (f Fixed) Now() time.Time {
	return f.T
}
