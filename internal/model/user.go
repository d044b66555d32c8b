package model

import "time"

// User represents an account record as stored in the `users` table.
// PasswordHash is never serialized; handlers expose users through this
// struct directly so the json tags double as the public projection.
//
// Fields:
//  ID           – primary key identifier of the user.
//  FirstName    – given name supplied at registration.
//  LastName     – family name supplied at registration.
//  Email        – unique email address, compared exactly as stored.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`        // users.id
	FirstName    string    `json:"firstName"` // users.first_name
	LastName     string    `json:"lastName"`  // users.last_name
	Email        string    `json:"email"`     // users.email
	PasswordHash string    `json:"-"`         // users.password_hash
	CreatedAt    time.Time `json:"-"`         // users.created_at
}
