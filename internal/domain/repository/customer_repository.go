package repository

import (
	"context"
	"time"

	"crm/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrCustomerNotFound is returned when no customer matches the lookup.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerFilter holds the optional, conjunctive list filters.
// Name matches first name, last name, or "first last" as a case-insensitive
// substring; Email and Region are case-insensitive substring matches; the
// date bounds are inclusive and compared at day granularity.
type CustomerFilter struct {
	Name                 string
	Email                string
	Region               string
	RegistrationDateFrom *time.Time
	RegistrationDateTo   *time.Time
}

// CustomerRepository persists customer records.
type CustomerRepository interface {
	// Create inserts a new customer and fills in the generated ID. A
	// unique-constraint violation on email surfaces as a domain conflict
	// error.
	Create(ctx context.Context, customer *entity.Customer) error

	// FindByID retrieves a customer by primary key.
	FindByID(ctx context.Context, id uint) (*entity.Customer, error)

	// FindByEmail retrieves a customer by exact email.
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// List returns the customers matching the filter, ordered by ID so the
	// result is stable within a call. An empty filter returns everything.
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, error)

	// Update overwrites all mutable fields of the customer and reports how
	// many rows were affected.
	Update(ctx context.Context, customer *entity.Customer) (int64, error)

	// Delete removes the customer and reports how many rows were affected.
	Delete(ctx context.Context, id uint) (int64, error)
}
