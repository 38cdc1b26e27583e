package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "crm/internal/delivery/context"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/infra/metrics"
	"crm/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// customerService implements the CustomerUsecase interface.
type customerService struct {
	customerRepo repository.CustomerRepository
	logger       *slog.Logger
}

// CustomerServiceParams holds dependencies for customerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	CustomerRepo repository.CustomerRepository
	Logger       *slog.Logger
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: params.CustomerRepo,
		logger:       params.Logger,
	}
}

func (srv *customerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create persists a new customer record, enforcing email uniqueness.
func (srv *customerService) Create(ctx context.Context, input *usecase.CreateCustomerInput) (*entity.Customer, error) {
	srv.log(ctx).Info("Creating customer", slog.String("email", input.Email))

	// Check-then-insert: the unique index on customers.email is the final
	// backstop when two concurrent creates race past this check.
	existing, err := srv.customerRepo.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
		srv.log(ctx).Error("Failed to check email availability", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to check email availability")
	}
	if existing != nil {
		srv.log(ctx).Warn("Customer email already in use", slog.String("email", input.Email))

		return nil, domainerrors.ErrEmailTaken.WrapMessage("a customer with email " + input.Email + " already exists")
	}

	customer := &entity.Customer{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		Region:           input.Region,
		RegistrationDate: input.RegistrationDate.UTC(),
	}

	if err := srv.customerRepo.Create(ctx, customer); err != nil {
		// A storage-level uniqueness violation is translated by the
		// repository into the same conflict kind as the pre-check.
		if isStoreConflict(err) {
			srv.log(ctx).Warn("Customer creation rejected by store", slog.String("email", input.Email), slog.Any("error", err))

			return nil, err
		}
		srv.log(ctx).Error("Failed to persist customer", slog.String("email", input.Email), slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to persist customer")
	}

	metrics.CustomerWritesTotal.WithLabelValues("create").Inc()
	srv.log(ctx).Info("Customer created", slog.Uint64("customerID", uint64(customer.ID)), slog.String("email", customer.Email))

	return customer, nil
}

// GetByID retrieves a single customer record.
func (srv *customerService) GetByID(ctx context.Context, id uint) (*entity.Customer, error) {
	customer, err := srv.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound.WrapMessage("no customer with that id")
		}
		srv.log(ctx).Error("Failed to load customer", slog.Uint64("customerID", uint64(id)), slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to load customer")
	}

	return customer, nil
}

// GetByEmail retrieves a customer by email. A blank email is NotFound, not a
// validation error.
func (srv *customerService) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	if strings.TrimSpace(email) == "" {
		return nil, domainerrors.ErrCustomerNotFound.WrapMessage("blank email")
	}

	customer, err := srv.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, domainerrors.ErrCustomerNotFound.WrapMessage("no customer with email " + email)
		}
		srv.log(ctx).Error("Failed to load customer by email", slog.String("email", email), slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to load customer")
	}

	return customer, nil
}

// ListFiltered returns the customers matching the optional, conjunctive
// filters. No filters returns all customers.
func (srv *customerService) ListFiltered(ctx context.Context, input *usecase.ListCustomersInput) ([]*entity.Customer, error) {
	filter := repository.CustomerFilter{}
	if input != nil {
		filter = repository.CustomerFilter{
			Name:                 input.Name,
			Email:                input.Email,
			Region:               input.Region,
			RegistrationDateFrom: input.RegistrationDateFrom,
			RegistrationDateTo:   input.RegistrationDateTo,
		}
	}

	customers, err := srv.customerRepo.List(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to list customers", slog.Any("error", err))

		return nil, domainerrors.ErrInternal.WrapMessage("failed to list customers")
	}

	return customers, nil
}

// Update overwrites all mutable fields of an existing customer. It returns
// false without error when no customer with the input ID exists, and true
// only when the store confirms at least one row changed.
func (srv *customerService) Update(ctx context.Context, input *usecase.UpdateCustomerInput) (bool, error) {
	existing, err := srv.customerRepo.FindByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			srv.log(ctx).Warn("Update for nonexistent customer", slog.Uint64("customerID", uint64(input.ID)))

			return false, nil
		}
		srv.log(ctx).Error("Failed to load customer for update", slog.Uint64("customerID", uint64(input.ID)), slog.Any("error", err))

		return false, domainerrors.ErrInternal.WrapMessage("failed to load customer")
	}

	// Email uniqueness only matters when the email actually changes, and
	// only conflicts with a different customer.
	if !strings.EqualFold(existing.Email, input.Email) {
		withEmail, err := srv.customerRepo.FindByEmail(ctx, input.Email)
		if err != nil && !errors.Is(err, repository.ErrCustomerNotFound) {
			srv.log(ctx).Error("Failed to check email availability", slog.String("email", input.Email), slog.Any("error", err))

			return false, domainerrors.ErrInternal.WrapMessage("failed to check email availability")
		}
		if withEmail != nil && withEmail.ID != input.ID {
			srv.log(ctx).Warn("Customer email already in use by another customer",
				slog.String("email", input.Email), slog.Uint64("otherID", uint64(withEmail.ID)))

			return false, domainerrors.ErrEmailTaken.WrapMessage("email " + input.Email + " is already in use by another customer")
		}
	}

	existing.FirstName = input.FirstName
	existing.LastName = input.LastName
	existing.Email = input.Email
	existing.Region = input.Region
	existing.RegistrationDate = input.RegistrationDate.UTC()

	affected, err := srv.customerRepo.Update(ctx, existing)
	if err != nil {
		if isStoreConflict(err) {
			srv.log(ctx).Warn("Customer update rejected by store", slog.Uint64("customerID", uint64(input.ID)), slog.Any("error", err))

			return false, err
		}
		srv.log(ctx).Error("Failed to update customer", slog.Uint64("customerID", uint64(input.ID)), slog.Any("error", err))

		return false, domainerrors.ErrInternal.WrapMessage("failed to update customer")
	}

	if affected == 0 {
		srv.log(ctx).Warn("Customer update affected no rows", slog.Uint64("customerID", uint64(input.ID)))

		return false, nil
	}

	metrics.CustomerWritesTotal.WithLabelValues("update").Inc()
	srv.log(ctx).Info("Customer updated", slog.Uint64("customerID", uint64(input.ID)))

	return true, nil
}

// Delete removes a customer. It returns false when no such customer exists
// and true only when the store confirms a row was removed.
func (srv *customerService) Delete(ctx context.Context, id uint) (bool, error) {
	if _, err := srv.customerRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			srv.log(ctx).Warn("Delete for nonexistent customer", slog.Uint64("customerID", uint64(id)))

			return false, nil
		}
		srv.log(ctx).Error("Failed to load customer for delete", slog.Uint64("customerID", uint64(id)), slog.Any("error", err))

		return false, domainerrors.ErrInternal.WrapMessage("failed to load customer")
	}

	affected, err := srv.customerRepo.Delete(ctx, id)
	if err != nil {
		srv.log(ctx).Error("Failed to delete customer", slog.Uint64("customerID", uint64(id)), slog.Any("error", err))

		return false, domainerrors.ErrInternal.WrapMessage("failed to delete customer")
	}

	if affected == 0 {
		return false, nil
	}

	metrics.CustomerWritesTotal.WithLabelValues("delete").Inc()
	srv.log(ctx).Info("Customer deleted", slog.Uint64("customerID", uint64(id)))

	return true, nil
}
