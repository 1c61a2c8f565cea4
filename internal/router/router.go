package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/andytrench/history-media-hunter/internal/handler"
	"github.com/andytrench/history-media-hunter/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Grade    *handler.GradeHandler
	Progress *handler.ProgressHandler
	Report   *handler.ReportHandler
	User     *handler.UserHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks and metrics (outside the API group)
	app.Get("/api/health/live", h.Health.Live)
	app.Get("/api/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	browseLimit := middleware.NewBrowseRateLimiter().Handler()
	progressLimit := middleware.NewProgressRateLimiter().Handler()
	bulkLimit := middleware.NewBulkCreditRateLimiter().Handler()
	reportLimit := middleware.NewReportRateLimiter().Handler()

	api := app.Group("/api")

	// Grade routes
	api.Get("/grades", h.Grade.List, browseLimit)
	api.Get("/grades/:gradeNum", h.Grade.GetTree, browseLimit)
	api.Get("/media/disabled", h.Grade.ListDisabled, browseLimit)

	// Progress routes
	api.Post("/progress/bulk", h.Progress.BulkCredit, bulkLimit)
	api.Post("/progress", h.Progress.Save, progressLimit)
	api.Get("/progress/:studentId", h.Progress.ListByStudent, browseLimit)

	// User routes
	api.Get("/users", h.User.List, browseLimit)
	api.Get("/users/:userId", h.User.GetByUserID, browseLimit)
	api.Get("/students", h.User.ListStudents, browseLimit)

	// Report routes
	api.Post("/reports", h.Report.Submit, reportLimit)
	api.Get("/reports", h.Report.List, browseLimit)
	api.Patch("/reports/:id", h.Report.Resolve, reportLimit)
}
