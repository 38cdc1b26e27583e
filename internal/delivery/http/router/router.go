// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"crm/internal/delivery/http/middleware"
	"crm/internal/delivery/http/router/handler"
	"crm/internal/delivery/web"
	"crm/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CustomerHandler *handler.CustomerHandler
	WebHandler      *web.Handler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	customerHandler *handler.CustomerHandler
	webHandler      *web.Handler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		customerHandler: params.CustomerHandler,
		webHandler:      params.WebHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API and page routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	adminOnly := r.authMiddleware.RequireRole(entity.RoleAdmin)

	// Auth routes. Only an administrator may provision new accounts; the
	// seeded admin bootstraps the first one.
	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/register", r.authHandler.Register, r.authMiddleware.Authenticate, adminOnly)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// Customer routes. Reads and creation are open to any authenticated
	// account; replacing or removing records requires the Admin role.
	customerGroup := e.Group("/api/customers")
	customerGroup.Use(r.authMiddleware.Authenticate)
	{
		customerGroup.GET("", r.customerHandler.List)
		customerGroup.GET("/by-email", r.customerHandler.GetByEmail)
		customerGroup.GET("/:id", r.customerHandler.Get)
		customerGroup.POST("", r.customerHandler.Create)

		customerGroup.PUT("/:id", r.customerHandler.Update, adminOnly)
		customerGroup.DELETE("/:id", r.customerHandler.Delete, adminOnly)
	}

	// Server-rendered pages
	e.GET("/login", r.webHandler.LoginPage)
	e.POST("/login", r.webHandler.Login)
	e.GET("/logout", r.webHandler.Logout)
	e.POST("/logout", r.webHandler.Logout)

	pageGroup := e.Group("")
	pageGroup.Use(r.authMiddleware.AuthenticateWeb)
	{
		pageGroup.GET("/", r.webHandler.Home)
		pageGroup.GET("/customers", r.webHandler.CustomersPage)
		pageGroup.GET("/customers/new", r.webHandler.NewCustomerPage)
		pageGroup.POST("/customers/new", r.webHandler.CreateCustomer)
		pageGroup.GET("/customers/:id/edit", r.webHandler.EditCustomerPage)
		pageGroup.POST("/customers/:id/edit", r.webHandler.UpdateCustomer)
		pageGroup.POST("/customers/:id/delete", r.webHandler.DeleteCustomer)
	}
}
