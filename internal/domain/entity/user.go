// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single aggregate of the system: one registered account.
// PasswordHash is credential material and must never cross the HTTP
// boundary; handlers serialize PublicUser instead.
type User struct {
	ID           uuid.UUID // Store-assigned identifier, immutable after creation.
	Username     string    // Unique display handle, minimum length 5.
	FirstName    string    // Non-empty given name.
	LastName     string    // Non-empty family name.
	Email        string    // Unique login identifier, valid address syntax.
	PasswordHash string    // Salted bcrypt hash, never empty for a persisted user.
	CreatedAt    time.Time // Set once by the store at creation.
	UpdatedAt    time.Time // Bumped by the store on every mutation.
}

// PublicUser is the externally visible projection of a User.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"emailAddress"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public projects the user into its externally visible shape, dropping
// credential material.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}

	return &PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
