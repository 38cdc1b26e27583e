package postgres

import (
	"context"
	"strings"
	"time"

	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/domain/repository"
	"crm/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// customerRepository implements the repository.CustomerRepository interface using GORM.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

// Create persists a new customer. A uniqueness violation on email is
// translated into the same conflict kind the service's pre-check produces.
func (repo *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	customerM := fromCustomerDomain(customer)

	if err := repo.db.WithContext(ctx).Create(customerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("customer email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required customer information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create customer")
	}

	customer.ID = customerM.ID

	return nil
}

// FindByID retrieves a single customer by their unique ID.
func (repo *customerRepository) FindByID(ctx context.Context, id uint) (*entity.Customer, error) {
	var customerM model.CustomerModel
	if err := repo.db.WithContext(ctx).First(&customerM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by id")
	}

	return toCustomerDomain(&customerM), nil
}

// FindByEmail retrieves a single customer by email, matched
// case-insensitively.
func (repo *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var customerM model.CustomerModel
	err := repo.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&customerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCustomerNotFound
		}

		return nil, errors.Wrap(err, "failed to find customer by email")
	}

	return toCustomerDomain(&customerM), nil
}

// List returns all customers matching the conjunctive filters, ordered by id
// for a stable listing. Name matches the first name, the last name, or the
// "first last" concatenation as a case-insensitive substring. Date bounds are
// inclusive at day granularity.
func (repo *customerRepository) List(ctx context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	query := repo.db.WithContext(ctx).Model(&model.CustomerModel{})

	if filter.Name != "" {
		pattern := containsPattern(filter.Name)
		query = query.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR (first_name || ' ' || last_name) ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if filter.Email != "" {
		query = query.Where("email ILIKE ?", containsPattern(filter.Email))
	}
	if filter.Region != "" {
		query = query.Where("region ILIKE ?", containsPattern(filter.Region))
	}
	if filter.RegistrationDateFrom != nil {
		query = query.Where("registration_date >= ?", dayStart(*filter.RegistrationDateFrom))
	}
	if filter.RegistrationDateTo != nil {
		query = query.Where("registration_date < ?", dayAfter(*filter.RegistrationDateTo))
	}

	var models []*model.CustomerModel
	if err := query.Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}

	customers := make([]*entity.Customer, 0, len(models))
	for _, m := range models {
		customers = append(customers, toCustomerDomain(m))
	}

	return customers, nil
}

// Update saves all fields of an existing customer and reports how many rows
// the statement touched.
func (repo *customerRepository) Update(ctx context.Context, customer *entity.Customer) (int64, error) {
	customerM := fromCustomerDomain(customer)

	result := repo.db.WithContext(ctx).
		Model(&model.CustomerModel{}).
		Where("id = ?", customerM.ID).
		Updates(map[string]any{
			"first_name":        customerM.FirstName,
			"last_name":         customerM.LastName,
			"email":             customerM.Email,
			"region":            customerM.Region,
			"registration_date": customerM.RegistrationDate,
		})
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return 0, domainerrors.ErrEmailTaken.WrapMessage("customer email already registered")
		}

		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update customer")
	}

	return result.RowsAffected, nil
}

// Delete removes a customer by id and reports how many rows were removed.
func (repo *customerRepository) Delete(ctx context.Context, id uint) (int64, error) {
	result := repo.db.WithContext(ctx).Delete(&model.CustomerModel{}, id)
	if result.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete customer")
	}

	return result.RowsAffected, nil
}

// likeWildcardEscaper neutralizes the LIKE metacharacters so filter values
// only ever match literally.
var likeWildcardEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a substring pattern from a raw filter value.
func containsPattern(value string) string {
	return "%" + likeWildcardEscaper.Replace(value) + "%"
}

// dayStart truncates a timestamp to midnight UTC of its calendar day. It is
// the inclusive lower bound of a day-granularity date filter.
func dayStart(t time.Time) time.Time {
	t = t.UTC()

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// dayAfter returns midnight UTC of the following calendar day, the exclusive
// upper bound that makes a date filter inclusive of the whole "to" day.
func dayAfter(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1)
}

// --- Mapper Functions ---

func toCustomerDomain(data *model.CustomerModel) *entity.Customer {
	if data == nil {
		return nil
	}

	return &entity.Customer{
		ID:               data.ID,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		Email:            data.Email,
		Region:           data.Region,
		RegistrationDate: data.RegistrationDate.UTC(),
	}
}

func fromCustomerDomain(data *entity.Customer) *model.CustomerModel {
	if data == nil {
		return nil
	}

	return &model.CustomerModel{
		ID:               data.ID,
		FirstName:        data.FirstName,
		LastName:         data.LastName,
		Email:            data.Email,
		Region:           data.Region,
		RegistrationDate: data.RegistrationDate.UTC(),
	}
}
