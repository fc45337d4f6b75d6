// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"passport/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail is returned when a write violates the unique email index.
// The index is the source of truth for uniqueness; application-level
// pre-checks are advisory only.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrDuplicateUsername is returned when a write violates the unique username index.
var ErrDuplicateUsername = errors.New("username already exists")

// UpdateResult carries the store's account of an update operation.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByUsername retrieves a single user by their username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user, assigning ID and timestamps. Unique index
	// violations surface as ErrDuplicateEmail / ErrDuplicateUsername.
	Create(ctx context.Context, user *entity.User) error

	// Update rewrites the mutable fields of an existing user and bumps
	// UpdatedAt. Returns ErrUserNotFound when no document matched.
	Update(ctx context.Context, user *entity.User) (*UpdateResult, error)

	// Delete removes a user by ID. Returns ErrUserNotFound when nothing was
	// deleted.
	Delete(ctx context.Context, id uuid.UUID) error
}
