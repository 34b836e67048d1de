package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/hackforge/hackathon-service/internal/api/http/handlers"
	"github.com/hackforge/hackathon-service/internal/auth"
	"github.com/hackforge/hackathon-service/internal/config"
	"github.com/hackforge/hackathon-service/internal/observability"
	"github.com/hackforge/hackathon-service/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Hackers        *handlers.HackerHandler
	AuthMiddleware fiber.Handler
	Limiter        ratelimit.Limiter
	RateLimit      config.RateLimitConfig
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	window := cfg.RateLimit.Window()
	if window <= 0 {
		window = time.Minute
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/accounts", cfg.Accounts.Register)
	authGroup.Post("/login",
		RateLimit(cfg.Limiter, "login", ClientIP, cfg.RateLimit.LoginLimit, window),
		cfg.Accounts.Login)

	hacker := app.Group("/api/hacker", cfg.AuthMiddleware, auth.RequireAuthenticated())
	hacker.Post("/", cfg.Hackers.Create)
	hacker.Get("/self", cfg.Hackers.Self)
	hacker.Patch("/status/:id", auth.RequireStaff(), cfg.Hackers.UpdateStatus)
	hacker.Post("/resume/:id",
		RateLimit(cfg.Limiter, "resume", PrincipalID, cfg.RateLimit.ResumeUploadLimit, window),
		cfg.Hackers.UploadResume)
	hacker.Get("/resume/:id", cfg.Hackers.DownloadResume)
	hacker.Get("/:id", cfg.Hackers.Get)
	hacker.Patch("/:id", cfg.Hackers.Update)
}
