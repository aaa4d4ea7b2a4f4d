package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-helpdesk/internal/api/http/handlers"
	"github.com/spec-kit/tutor-helpdesk/internal/auth"
	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Helpdesk        *handlers.HelpdeskHandler
	Lifecycle       *handlers.LifecycleHandler
	Auth            *handlers.AuthHandler
	AuthMiddleware  *auth.AuthMiddleware
	TutorPermission domain.PermissionLevel
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	site := app.Group("", cfg.AuthMiddleware.Identify)
	site.Get("/", cfg.Helpdesk.Index)
	site.Get("/create-ticket", cfg.Helpdesk.CreateTicketForm)
	site.Post("/create-ticket", cfg.Helpdesk.CreateTicket)
	site.Post("/login", cfg.Auth.Login)
	site.Get("/logout", cfg.Auth.Logout)

	level := cfg.TutorPermission
	if level <= 0 {
		level = domain.PermissionTutor
	}
	// The gate sits on each route rather than a group so rejected requests
	// still report the route they asked for.
	tutorOnly := auth.RequirePermission(level)
	site.Get("/view-tickets", tutorOnly, cfg.Helpdesk.ViewTickets)
	site.Post("/update-ticket", tutorOnly, cfg.Lifecycle.UpdateTicket)
	site.Post("/edit-ticket", tutorOnly, cfg.Lifecycle.EditTicket)
	site.Get("/tickets/:id/history", tutorOnly, cfg.Lifecycle.TicketHistory)
}
