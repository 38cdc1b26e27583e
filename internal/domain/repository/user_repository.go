// Package repository defines the persistence interfaces consumed by the
// use case layer. Concrete implementations live under internal/infra.
package repository

import (
	"context"

	"crm/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository persists user accounts.
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID and
	// timestamps. A unique-constraint violation surfaces as a domain
	// conflict error.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by primary key.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByUsername retrieves a user by username, compared
	// case-insensitively.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Update overwrites the stored user record.
	Update(ctx context.Context, user *entity.User) error
}
