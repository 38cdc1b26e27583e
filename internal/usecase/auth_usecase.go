// Package usecase defines the application's business logic interfaces.
package usecase

import (
	"context"
	"time"

	"crm/internal/domain/entity"
)

// RegisterUserInput is the input for registering a new account.
type RegisterUserInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     string `json:"role" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginInput is the input for username/password login.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput carries the signed bearer token, its computed expiry, and the
// authenticated user. A LoginOutput exists only for a successful login;
// failures are reported through the error return.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// AuthUsecase orchestrates registration and login.
type AuthUsecase interface {
	// RegisterUser validates the candidate, enforces case-insensitive
	// username uniqueness, hashes the password and persists the account.
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*entity.User, error)

	// Login verifies the credentials and issues a bearer token. An unknown
	// username and a wrong password produce the identical error.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetUserByUsername looks up an account; a blank username is NotFound.
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
}
