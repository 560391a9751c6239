package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/skor-go-api/internal/config"
	"github.com/noah-isme/skor-go-api/internal/handler"
	"github.com/noah-isme/skor-go-api/internal/middleware"
	"github.com/noah-isme/skor-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssignmentHandler  *handler.AssignmentHandler
	SubmissionHandler  *handler.SubmissionHandler
	GradingHandler     *handler.GradingHandler
	LeaderboardHandler *handler.LeaderboardHandler
	ActivityHandler    *handler.ActivityHandler
	JWTMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	app.Get("/metrics", observability.MetricsHandler())

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	gradingRoles := middleware.RequireRole("teacher", "admin")

	if deps.AssignmentHandler != nil {
		assignmentGroup := api.Group("/assignments", jwtMiddleware)
		deps.AssignmentHandler.Register(assignmentGroup)
	}

	if deps.SubmissionHandler != nil {
		submissionGroup := api.Group("/submissions", jwtMiddleware)
		deps.SubmissionHandler.Register(submissionGroup)

		if deps.GradingHandler != nil {
			gradingGroup := api.Group("/submissions", jwtMiddleware, gradingRoles)
			deps.GradingHandler.Register(gradingGroup)
		}
	}

	if deps.LeaderboardHandler != nil {
		classGroup := api.Group("/classes", jwtMiddleware)
		deps.LeaderboardHandler.Register(classGroup, gradingRoles)
	}

	if deps.ActivityHandler != nil {
		activityGroup := api.Group("/activity-logs", jwtMiddleware, middleware.RequireRole("admin"))
		deps.ActivityHandler.Register(activityGroup)
	}
}
