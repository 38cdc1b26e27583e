// Package entity contains the core domain entities of the application.
package entity

import "time"

// User is an account that can authenticate against the API.
// Username uniqueness is case-insensitive; email uniqueness is enforced by
// a storage constraint. Users are never deleted through any exposed
// operation.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`

	// PasswordHash never leaves the service boundary.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
