package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/booking-service/internal/api/http/handlers"
	"github.com/spec-kit/booking-service/internal/auth"
	"github.com/spec-kit/booking-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Auth             *handlers.AuthHandler
	Bookings         *handlers.BookingsHandler
	AdminBookings    *handlers.AdminBookingsHandler
	Services         *handlers.ServicesHandler
	CustomerServices *handlers.CustomerServicesHandler
	AuthMiddleware   *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Auth.Register)
	app.Post("/login", cfg.Auth.Login)

	authGroup := app.Group("/auth")
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	session := authGroup.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	session.Post("/logout", cfg.Auth.Logout)
	session.Get("/user", cfg.Auth.User)

	customer := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleCustomer))
	customer.Get("/bookings", cfg.Bookings.List)
	customer.Post("/bookings", cfg.Bookings.Create)
	customer.Get("/bookings/:id", cfg.Bookings.Get)
	customer.Put("/bookings/:id", cfg.Bookings.Update)
	customer.Delete("/bookings/:id", cfg.Bookings.Cancel)
	customer.Get("/user/services", cfg.CustomerServices.List)
	customer.Get("/user/services/:id", cfg.CustomerServices.Get)

	admin := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/services", cfg.Services.List)
	admin.Post("/services", cfg.Services.Create)
	admin.Get("/services/:id", cfg.Services.Get)
	admin.Put("/services/:id", cfg.Services.Update)
	admin.Delete("/services/:id", cfg.Services.Delete)
	admin.Get("/admin/bookings", cfg.AdminBookings.List)
}
