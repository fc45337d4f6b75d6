// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "errors"

// ErrMalformedHash is returned when a stored credential hash cannot be
// parsed. This is distinct from a plain mismatch, which is not an error.
var ErrMalformedHash = errors.New("malformed credential hash")

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. The salt is
	// embedded in the output, so verification needs no separate storage.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash. A mismatch yields
	// (false, nil); only an unreadable hash yields a non-nil error.
	Check(password, hash string) (bool, error)
}
