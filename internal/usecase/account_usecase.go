// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"passport/internal/domain/entity"
	"passport/internal/domain/repository"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// Password rule: alphanumeric, 6 to 30 characters. The documented minimum
// of 6 wins over the legacy pattern's floor of 3, which was unreachable.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=5"`
	FirstName string `json:"firstName" validate:"required,min=3"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"emailAddress" validate:"required,min=8,email"`
	Password  string `json:"password" validate:"required,alphanum,min=6,max=30"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"emailAddress" validate:"required,min=6"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateInfoInput defines the data for a profile update. All three fields
// are required even for partial updates; callers resend unchanged values.
type UpdateInfoInput struct {
	Username  string `json:"username" validate:"required,min=5"`
	FirstName string `json:"firstName" validate:"required,min=3"`
	LastName  string `json:"lastName" validate:"required"`
}

// DeleteInput optionally names the account to delete. When set it must match
// the authenticated user; deletion is never allowed across accounts.
type DeleteInput struct {
	UserID string `json:"userId"`
}

// --- Output DTOs ---

// LoginOutput returns the issued bearer token after a successful login.
type LoginOutput struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"userId"`
}

// UpdateInfoOutput returns the store's account of the update.
type UpdateInfoOutput struct {
	Result *repository.UpdateResult `json:"result"`
}

// AccountUsecase defines the interface for account business operations.
// This is the contract that the delivery layer (API handlers) depends on.
type AccountUsecase interface {
	// Register creates a new account. It acknowledges success without
	// echoing the created id.
	Register(ctx context.Context, input *RegisterInput) error

	// Login verifies credentials and issues a one-day bearer token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetInfo returns the public projection of the authenticated user.
	GetInfo(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error)

	// UpdateInfo rewrites username and names of the authenticated user.
	UpdateInfo(ctx context.Context, userID uuid.UUID, input *UpdateInfoInput) (*UpdateInfoOutput, error)

	// Delete removes the authenticated user's own account.
	Delete(ctx context.Context, userID uuid.UUID, input *DeleteInput) error
}
