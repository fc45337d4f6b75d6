package service

import (
	"errors"

	"github.com/google/uuid"
)

// Token verification failures. The delivery layer maps each to a distinct
// response so callers can tell a stale token from a forged one.
var (
	// ErrTokenMissing means no token was supplied at all.
	ErrTokenMissing = errors.New("authentication token missing")

	// ErrTokenInvalid means the token failed signature or structural checks.
	ErrTokenInvalid = errors.New("authentication token invalid")

	// ErrTokenExpired means the token was well-formed but past its expiry.
	ErrTokenExpired = errors.New("authentication token expired")
)

// TokenService defines the interface for issuing and verifying bearer tokens.
// Tokens are stateless: there is no revocation list, so a token stays valid
// until its natural expiry.
type TokenService interface {
	// Issue creates a signed token embedding the user ID, expiring after the
	// configured lifetime.
	Issue(userID uuid.UUID) (string, error)

	// Verify checks signature and expiry and returns the embedded user ID.
	// Failures are ErrTokenMissing, ErrTokenInvalid or ErrTokenExpired.
	Verify(token string) (uuid.UUID, error)
}
