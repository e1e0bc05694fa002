// Package hash provides helpers for hashing and verifying secrets.
//
// Typical usage is password hashing: store only the digest, then verify user
// input by comparing the plaintext against the stored digest. Implementations
// (like bcrypt) live in this package behind a small interface.
package hash

// Hash hashes plaintext secrets and verifies them against stored digests.
type Hash interface {
	// Hash returns the digest of plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the stored digest.
	Verify(hashed, plaintext string) bool
}
