package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	mockRepo "crm/internal/mocks/repository"
	"crm/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// customerServiceFixtures holds all test dependencies for customer service tests.
type customerServiceFixtures struct {
	service      usecase.CustomerUsecase
	customerRepo *mockRepo.MockCustomerRepository
}

func createTestCustomerService(t *testing.T) customerServiceFixtures {
	customerRepo := mockRepo.NewMockCustomerRepository(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewCustomerService(CustomerServiceParams{
		CustomerRepo: customerRepo,
		Logger:       logger,
	})

	return customerServiceFixtures{
		service:      svc,
		customerRepo: customerRepo,
	}
}

func TestCustomerService_Create_NormalizesRegistrationDateToUTC(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	offset := time.FixedZone("CEST", 2*60*60)
	localDate := time.Date(2024, 5, 12, 14, 30, 0, 0, offset)

	fixtures.customerRepo.On("FindByEmail", ctx, "lee@example.com").
		Return(nil, repository.ErrCustomerNotFound).Once()
	fixtures.customerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Customer")).
		Run(func(args mock.Arguments) {
			customer := args.Get(1).(*entity.Customer)
			customer.ID = 11
		}).
		Return(nil).Once()

	customer, err := fixtures.service.Create(ctx, &usecase.CreateCustomerInput{
		FirstName:        "Lee",
		LastName:         "Chan",
		Email:            "lee@example.com",
		Region:           "East",
		RegistrationDate: localDate,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(11), customer.ID)
	assert.Equal(t, time.UTC, customer.RegistrationDate.Location())
	assert.True(t, customer.RegistrationDate.Equal(localDate))
}

func TestCustomerService_Create_EmailTaken(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	fixtures.customerRepo.On("FindByEmail", ctx, "lee@example.com").
		Return(&entity.Customer{ID: 2, Email: "lee@example.com"}, nil).Once()

	_, err := fixtures.service.Create(ctx, &usecase.CreateCustomerInput{
		FirstName:        "Lee",
		LastName:         "Chan",
		Email:            "lee@example.com",
		RegistrationDate: time.Now(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
	fixtures.customerRepo.AssertNotCalled(t, "Create")
}

func TestCustomerService_Create_StoreConflictPassesThrough(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	fixtures.customerRepo.On("FindByEmail", ctx, "lee@example.com").
		Return(nil, repository.ErrCustomerNotFound).Once()
	fixtures.customerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Customer")).
		Return(domainerrors.ErrEmailTaken.WrapMessage("customer email already registered")).Once()

	_, err := fixtures.service.Create(ctx, &usecase.CreateCustomerInput{
		FirstName:        "Lee",
		LastName:         "Chan",
		Email:            "lee@example.com",
		RegistrationDate: time.Now(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestCustomerService_Create_StoreFailureIsInternal(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	fixtures.customerRepo.On("FindByEmail", ctx, "lee@example.com").
		Return(nil, repository.ErrCustomerNotFound).Once()
	fixtures.customerRepo.On("Create", ctx, mock.AnythingOfType("*entity.Customer")).
		Return(domainerrors.NewDatabaseExecuteError(errors.New("connection reset by peer"), "failed to create customer")).Once()

	_, err := fixtures.service.Create(ctx, &usecase.CreateCustomerInput{
		FirstName:        "Lee",
		LastName:         "Chan",
		Email:            "lee@example.com",
		RegistrationDate: time.Now(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)
	assert.NotErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestCustomerService_GetByEmail_Blank(t *testing.T) {
	fixtures := createTestCustomerService(t)

	_, err := fixtures.service.GetByEmail(context.Background(), "  ")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCustomerNotFound)
	fixtures.customerRepo.AssertNotCalled(t, "FindByEmail")
}

func TestCustomerService_Update_MissingCustomerReturnsFalse(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	fixtures.customerRepo.On("FindByID", ctx, uint(9999)).
		Return(nil, repository.ErrCustomerNotFound).Once()

	updated, err := fixtures.service.Update(ctx, &usecase.UpdateCustomerInput{
		ID:               9999,
		FirstName:        "Lee",
		LastName:         "Chan",
		Email:            "lee@example.com",
		RegistrationDate: time.Now(),
	})

	require.NoError(t, err)
	assert.False(t, updated)
	fixtures.customerRepo.AssertNotCalled(t, "Update")
}

func TestCustomerService_Update_Success(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	existing := &entity.Customer{
		ID:               4,
		FirstName:        "Lee",
		LastName:         "Chan",
		Email:            "lee@example.com",
		Region:           "East",
		RegistrationDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	fixtures.customerRepo.On("FindByID", ctx, uint(4)).Return(existing, nil).Once()
	fixtures.customerRepo.On("Update", ctx, mock.MatchedBy(func(c *entity.Customer) bool {
		return c.ID == 4 && c.Region == "North" && c.RegistrationDate.Location() == time.UTC
	})).Return(int64(1), nil).Once()

	updated, err := fixtures.service.Update(ctx, &usecase.UpdateCustomerInput{
		ID:               4,
		FirstName:        "Lee",
		LastName:         "Chan",
		Email:            "lee@example.com",
		Region:           "North",
		RegistrationDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, updated)
}

func TestCustomerService_Update_EmailUsedByAnotherCustomer(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	existing := &entity.Customer{ID: 4, Email: "lee@example.com"}
	other := &entity.Customer{ID: 8, Email: "other@example.com"}
	fixtures.customerRepo.On("FindByID", ctx, uint(4)).Return(existing, nil).Once()
	fixtures.customerRepo.On("FindByEmail", ctx, "other@example.com").Return(other, nil).Once()

	updated, err := fixtures.service.Update(ctx, &usecase.UpdateCustomerInput{
		ID:               4,
		FirstName:        "Lee",
		LastName:         "Chan",
		Email:            "other@example.com",
		RegistrationDate: time.Now(),
	})

	require.Error(t, err)
	assert.False(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
	fixtures.customerRepo.AssertNotCalled(t, "Update")
}

func TestCustomerService_Update_StoreFailureIsInternal(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	existing := &entity.Customer{ID: 4, Email: "lee@example.com"}
	fixtures.customerRepo.On("FindByID", ctx, uint(4)).Return(existing, nil).Once()
	fixtures.customerRepo.On("Update", ctx, mock.AnythingOfType("*entity.Customer")).
		Return(int64(0), domainerrors.NewDatabaseExecuteError(errors.New("connection reset by peer"), "failed to update customer")).Once()

	updated, err := fixtures.service.Update(ctx, &usecase.UpdateCustomerInput{
		ID:               4,
		FirstName:        "Lee",
		LastName:         "Chan",
		Email:            "lee@example.com",
		RegistrationDate: time.Now(),
	})

	require.Error(t, err)
	assert.False(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrInternal)
}

func TestCustomerService_Delete_MissingCustomerReturnsFalse(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	fixtures.customerRepo.On("FindByID", ctx, uint(42)).
		Return(nil, repository.ErrCustomerNotFound).Once()

	deleted, err := fixtures.service.Delete(ctx, 42)

	require.NoError(t, err)
	assert.False(t, deleted)
	fixtures.customerRepo.AssertNotCalled(t, "Delete")
}

func TestCustomerService_Delete_SecondDeleteReturnsFalse(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	customer := &entity.Customer{ID: 42, Email: "lee@example.com"}
	fixtures.customerRepo.On("FindByID", ctx, uint(42)).Return(customer, nil).Twice()
	fixtures.customerRepo.On("Delete", ctx, uint(42)).Return(int64(1), nil).Once()
	fixtures.customerRepo.On("Delete", ctx, uint(42)).Return(int64(0), nil).Once()

	first, err := fixtures.service.Delete(ctx, 42)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := fixtures.service.Delete(ctx, 42)
	require.NoError(t, err)
	assert.False(t, second)
}

func TestCustomerService_ListFiltered_PassesFilterThrough(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	expected := []*entity.Customer{
		{ID: 1, FirstName: "Lee", LastName: "Chan"},
		{ID: 2, FirstName: "Ann", LastName: "Lee"},
	}
	fixtures.customerRepo.On("List", ctx, repository.CustomerFilter{
		Name:                 "lee",
		Region:               "East",
		RegistrationDateFrom: &from,
	}).Return(expected, nil).Once()

	customers, err := fixtures.service.ListFiltered(ctx, &usecase.ListCustomersInput{
		Name:                 "lee",
		Region:               "East",
		RegistrationDateFrom: &from,
	})

	require.NoError(t, err)
	assert.Equal(t, expected, customers)
}

func TestCustomerService_ListFiltered_NilInputListsAll(t *testing.T) {
	fixtures := createTestCustomerService(t)
	ctx := context.Background()

	fixtures.customerRepo.On("List", ctx, repository.CustomerFilter{}).
		Return([]*entity.Customer{}, nil).Once()

	customers, err := fixtures.service.ListFiltered(ctx, nil)

	require.NoError(t, err)
	assert.Empty(t, customers)
}
