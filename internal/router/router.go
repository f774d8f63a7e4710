package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/act-survey-api/internal/config"
	"github.com/noah-isme/act-survey-api/internal/handler"
	"github.com/noah-isme/act-survey-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	SurveyHandler *handler.SurveyHandler
	StatsHandler  *handler.StatsHandler
	AdminHandler  *handler.AdminHandler
	Database      handler.Pinger
	// AdminAuth guards every admin route. Registration refuses to expose admin
	// routes without it.
	AdminAuth     fiber.Handler
	SubmitLimiter fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.Database))

	app.Get("/metrics", observability.MetricsHandler())

	if deps.SurveyHandler != nil {
		var submitMiddleware []fiber.Handler
		if deps.SubmitLimiter != nil {
			submitMiddleware = append(submitMiddleware, deps.SubmitLimiter)
		}
		deps.SurveyHandler.Register(api.Group("/survey"), submitMiddleware...)

		// Legacy form posts target /submit.
		app.Post("/submit", append(submitMiddleware, deps.SurveyHandler.Submit)...)
	}

	if deps.StatsHandler != nil {
		deps.StatsHandler.Register(app.Group("/api/stats"))
	}

	if deps.AdminHandler != nil && deps.AdminAuth != nil {
		deps.AdminHandler.Register(app.Group("/admin", deps.AdminAuth))
		app.Get("/download-db", deps.AdminAuth, deps.AdminHandler.Export)
	}
}
