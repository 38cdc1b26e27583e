package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"crm/internal/delivery/http/response"
	"crm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CustomerHandler holds dependencies for the customer CRUD endpoints.
type CustomerHandler struct {
	uc     usecase.CustomerUsecase
	logger *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler, injected by Fx.
func NewCustomerHandler(uc usecase.CustomerUsecase, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles the customer creation request.
func (h *CustomerHandler) Create(c echo.Context) error {
	var input usecase.CreateCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	customer, err := h.uc.Create(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, customer, "Customer created successfully")
}

// Get handles the lookup of a single customer by id.
func (h *CustomerHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer id")
	}

	customer, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "")
}

// GetByEmail handles the lookup of a single customer by email.
func (h *CustomerHandler) GetByEmail(c echo.Context) error {
	customer, err := h.uc.GetByEmail(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customer, "")
}

// List handles the filtered customer listing. All filters are optional and
// combine conjunctively.
func (h *CustomerHandler) List(c echo.Context) error {
	input := usecase.ListCustomersInput{
		Name:   c.QueryParam("name"),
		Email:  c.QueryParam("email"),
		Region: c.QueryParam("region"),
	}

	from, err := parseDateParam(c.QueryParam("registrationDateFrom"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid registrationDateFrom")
	}
	input.RegistrationDateFrom = from

	to, err := parseDateParam(c.QueryParam("registrationDateTo"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid registrationDateTo")
	}
	input.RegistrationDateTo = to

	customers, err := h.uc.ListFiltered(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, customers, "")
}

// Update handles the full replacement of a customer's fields. A missing
// customer renders 404 without touching the store.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer id")
	}

	var input usecase.UpdateCustomerInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}
	if input.ID != 0 && input.ID != id {
		return response.BadRequest(c, "INVALID_INPUT", "Body id does not match the path id")
	}
	input.ID = id
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.uc.Update(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}
	if !updated {
		return response.NotFound(c, "CUSTOMER_NOT_FOUND", "customer not found")
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete handles the removal of a customer. A missing customer renders 404.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer id")
	}

	deleted, err := h.uc.Delete(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}
	if !deleted {
		return response.NotFound(c, "CUSTOMER_NOT_FOUND", "customer not found")
	}

	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}

// parseDateParam accepts an RFC 3339 timestamp or a bare calendar date.
func parseDateParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
