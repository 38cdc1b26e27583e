package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"crm/internal/delivery/http/middleware"
	"crm/internal/domain/entity"
	domainerrors "crm/internal/domain/errors"
	"crm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Handler serves the login page and the customer management pages.
type Handler struct {
	authUC     usecase.AuthUsecase
	customerUC usecase.CustomerUsecase
	logger     *slog.Logger
}

// NewHandler is the constructor for the web Handler, injected by Fx.
func NewHandler(authUC usecase.AuthUsecase, customerUC usecase.CustomerUsecase, logger *slog.Logger) *Handler {
	return &Handler{
		authUC:     authUC,
		customerUC: customerUC,
		logger:     logger,
	}
}

type loginPageData struct {
	Error string
}

type customersPageData struct {
	Customers []*entity.Customer
	Filter    customerFilterForm
	IsAdmin   bool
	Username  string
}

type customerFilterForm struct {
	Name   string
	Email  string
	Region string
	From   string
	To     string
}

type customerFormData struct {
	Title  string
	Action string
	Error  string
	ID     uint

	FirstName        string
	LastName         string
	Email            string
	Region           string
	RegistrationDate string
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", loginPageData{})
}

// Login verifies the submitted credentials and stores the issued token in an
// HttpOnly session cookie before redirecting to the customer list.
func (h *Handler) Login(c echo.Context) error {
	input := usecase.LoginInput{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}

	output, err := h.authUC.Login(c.Request().Context(), &input)
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) && appErr.HTTPCode() == http.StatusUnauthorized {
			return c.Render(http.StatusUnauthorized, "login.html", loginPageData{Error: "Invalid username or password"})
		}

		return errors.WithStack(err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    output.Token,
		Path:     "/",
		Expires:  output.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusSeeOther, "/customers")
}

// Logout clears the session cookie and returns to the login page.
func (h *Handler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return c.Redirect(http.StatusSeeOther, "/login")
}

// Home redirects the root path to the customer list.
func (h *Handler) Home(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/customers")
}

// CustomersPage renders the filtered customer list.
func (h *Handler) CustomersPage(c echo.Context) error {
	form := customerFilterForm{
		Name:   c.QueryParam("name"),
		Email:  c.QueryParam("email"),
		Region: c.QueryParam("region"),
		From:   c.QueryParam("from"),
		To:     c.QueryParam("to"),
	}

	input := usecase.ListCustomersInput{
		Name:   form.Name,
		Email:  form.Email,
		Region: form.Region,
	}
	if t, err := time.Parse("2006-01-02", form.From); err == nil {
		input.RegistrationDateFrom = &t
	}
	if t, err := time.Parse("2006-01-02", form.To); err == nil {
		input.RegistrationDateTo = &t
	}

	customers, err := h.customerUC.ListFiltered(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	claims := middleware.GetClaims(c)
	data := customersPageData{
		Customers: customers,
		Filter:    form,
	}
	if claims != nil {
		data.IsAdmin = claims.Role == string(entity.RoleAdmin)
		data.Username = claims.Subject
	}

	return c.Render(http.StatusOK, "customers.html", data)
}

// NewCustomerPage renders the empty customer form.
func (h *Handler) NewCustomerPage(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.String(http.StatusForbidden, "Forbidden: administrator role required")
	}

	return c.Render(http.StatusOK, "customer_form.html", customerFormData{
		Title:  "New Customer",
		Action: "/customers/new",
	})
}

// CreateCustomer persists a new customer from the submitted form.
func (h *Handler) CreateCustomer(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.String(http.StatusForbidden, "Forbidden: administrator role required")
	}

	form := h.readCustomerForm(c)
	registrationDate, err := time.Parse("2006-01-02", form.RegistrationDate)
	if err != nil {
		form.Title = "New Customer"
		form.Action = "/customers/new"
		form.Error = "Registration date must be a valid date"

		return c.Render(http.StatusBadRequest, "customer_form.html", form)
	}

	_, err = h.customerUC.Create(c.Request().Context(), &usecase.CreateCustomerInput{
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		Email:            form.Email,
		Region:           form.Region,
		RegistrationDate: registrationDate,
	})
	if err != nil {
		form.Title = "New Customer"
		form.Action = "/customers/new"
		form.Error = userFacingError(err)

		return c.Render(http.StatusBadRequest, "customer_form.html", form)
	}

	return c.Redirect(http.StatusSeeOther, "/customers")
}

// EditCustomerPage renders the form pre-filled with an existing customer.
func (h *Handler) EditCustomerPage(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.String(http.StatusForbidden, "Forbidden: administrator role required")
	}

	id, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/customers")
	}

	customer, err := h.customerUC.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Render(http.StatusOK, "customer_form.html", customerFormData{
		Title:            "Edit Customer",
		Action:           "/customers/" + strconv.FormatUint(uint64(id), 10) + "/edit",
		ID:               customer.ID,
		FirstName:        customer.FirstName,
		LastName:         customer.LastName,
		Email:            customer.Email,
		Region:           customer.Region,
		RegistrationDate: customer.RegistrationDate.Format("2006-01-02"),
	})
}

// UpdateCustomer applies the submitted form to an existing customer.
func (h *Handler) UpdateCustomer(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.String(http.StatusForbidden, "Forbidden: administrator role required")
	}

	id, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/customers")
	}

	form := h.readCustomerForm(c)
	form.Title = "Edit Customer"
	form.Action = "/customers/" + strconv.FormatUint(uint64(id), 10) + "/edit"
	form.ID = id

	registrationDate, err := time.Parse("2006-01-02", form.RegistrationDate)
	if err != nil {
		form.Error = "Registration date must be a valid date"

		return c.Render(http.StatusBadRequest, "customer_form.html", form)
	}

	// A vanished customer falls through to the list like a successful edit.
	if _, err := h.customerUC.Update(c.Request().Context(), &usecase.UpdateCustomerInput{
		ID:               id,
		FirstName:        form.FirstName,
		LastName:         form.LastName,
		Email:            form.Email,
		Region:           form.Region,
		RegistrationDate: registrationDate,
	}); err != nil {
		form.Error = userFacingError(err)

		return c.Render(http.StatusBadRequest, "customer_form.html", form)
	}

	return c.Redirect(http.StatusSeeOther, "/customers")
}

// DeleteCustomer removes a customer and returns to the list.
func (h *Handler) DeleteCustomer(c echo.Context) error {
	if !h.isAdmin(c) {
		return c.String(http.StatusForbidden, "Forbidden: administrator role required")
	}

	id, err := parseID(c)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/customers")
	}

	if _, err := h.customerUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusSeeOther, "/customers")
}

func (h *Handler) isAdmin(c echo.Context) bool {
	claims := middleware.GetClaims(c)

	return claims != nil && claims.Role == string(entity.RoleAdmin)
}

func (h *Handler) readCustomerForm(c echo.Context) customerFormData {
	return customerFormData{
		FirstName:        c.FormValue("firstName"),
		LastName:         c.FormValue("lastName"),
		Email:            c.FormValue("email"),
		Region:           c.FormValue("region"),
		RegistrationDate: c.FormValue("registrationDate"),
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}

// userFacingError renders a domain error for the form, keeping anything
// internal opaque.
func userFacingError(err error) string {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) && appErr.HTTPCode() < http.StatusInternalServerError {
		if appErr.Details() != "" {
			return appErr.Details()
		}

		return appErr.Message()
	}

	return "Something went wrong, please try again"
}
