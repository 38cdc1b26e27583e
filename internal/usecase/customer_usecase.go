package usecase

import (
	"context"
	"time"

	"crm/internal/domain/entity"
)

// CreateCustomerInput is the input for creating a customer record.
// RegistrationDate must carry an explicit offset; the service converts it
// to UTC and never guesses a timezone.
type CreateCustomerInput struct {
	FirstName        string    `json:"firstName" validate:"required,max=50"`
	LastName         string    `json:"lastName" validate:"required,max=50"`
	Email            string    `json:"email" validate:"required,email,max=50"`
	Region           string    `json:"region,omitempty" validate:"max=50"`
	RegistrationDate time.Time `json:"registrationDate" validate:"required"`
}

// UpdateCustomerInput replaces all mutable fields of an existing customer.
type UpdateCustomerInput struct {
	ID               uint      `json:"id" validate:"required"`
	FirstName        string    `json:"firstName" validate:"required,max=50"`
	LastName         string    `json:"lastName" validate:"required,max=50"`
	Email            string    `json:"email" validate:"required,email,max=50"`
	Region           string    `json:"region,omitempty" validate:"max=50"`
	RegistrationDate time.Time `json:"registrationDate" validate:"required"`
}

// ListCustomersInput holds the optional, conjunctive list filters.
type ListCustomersInput struct {
	Name                 string
	Email                string
	Region               string
	RegistrationDateFrom *time.Time
	RegistrationDateTo   *time.Time
}

// CustomerUsecase orchestrates customer CRUD with email-uniqueness
// enforcement on create and update.
type CustomerUsecase interface {
	Create(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error)

	GetByID(ctx context.Context, id uint) (*entity.Customer, error)

	// GetByEmail treats a blank email as NotFound, not a validation error.
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)

	ListFiltered(ctx context.Context, input *ListCustomersInput) ([]*entity.Customer, error)

	// Update returns false without error when no customer with the input ID
	// exists, and true only when the store confirms a row changed.
	Update(ctx context.Context, input *UpdateCustomerInput) (bool, error)

	// Delete returns false when no such customer exists, true when the
	// deletion is confirmed.
	Delete(ctx context.Context, id uint) (bool, error)
}
