// Package model contains the persistence-layer document shapes.
package model

import "time"

// UserModel mirrors one document in the 'users' collection. The repository
// assigns the UUID primary key; uniqueness of username and emailAddress is
// enforced by indexes created at startup.
type UserModel struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	FirstName    string    `bson:"firstName"`
	LastName     string    `bson:"lastName"`
	Email        string    `bson:"emailAddress"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// CollectionName returns the collection this model is stored in.
func (UserModel) CollectionName() string {
	return "users"
}
