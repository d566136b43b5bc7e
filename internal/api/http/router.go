package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/repairshop-service/internal/api/http/handlers"
	"github.com/spec-kit/repairshop-service/internal/auth"
	"github.com/spec-kit/repairshop-service/internal/authz"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Jobs           *handlers.JobsHandler
	Customers      *handlers.CustomersHandler
	Notifications  *handlers.NotificationsHandler
	Sync           *handlers.SyncHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Route-group guards look up their
// identifier in the route permission table; per-endpoint guards check
// single permissions.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authed := app.Group("", cfg.AuthMiddleware.Handle)

	jobs := authed.Group("/jobs", auth.RequireRouteAccess("jobs"))
	jobs.Get("", cfg.Jobs.ListJobs)
	jobs.Post("", auth.RequirePermission(authz.PermCreateJob), cfg.Jobs.CreateJob)
	jobs.Patch("/:id", auth.RequirePermission(authz.PermUpdateJobStatus), cfg.Jobs.UpdateJob)
	jobs.Delete("/:id", auth.RequirePermission(authz.PermDeleteJob), cfg.Jobs.DeleteJob)
	jobs.Post("/:id/notes", auth.RequirePermission(authz.PermAddNote), cfg.Jobs.AddNote)

	customers := authed.Group("/customers", auth.RequireRouteAccess("customers"))
	customers.Get("", cfg.Customers.ListCustomers)

	notifications := authed.Group("/notifications", auth.RequirePermission(authz.PermViewNotifications))
	notifications.Get("", cfg.Notifications.ListNotifications)

	sync := authed.Group("/sync", auth.RequireRouteAccess("settings"))
	sync.Get("/queue", cfg.Sync.QueueStatus)
	sync.Post("/flush", cfg.Sync.Flush)
	sync.Delete("/queue/:id", cfg.Sync.DiscardAction)
}
