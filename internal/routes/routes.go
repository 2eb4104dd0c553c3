package routes

import (
	"time"

	"github.com/fieldforcehq/fieldforce-backend/internal/config"
	"github.com/fieldforcehq/fieldforce-backend/internal/firm"
	"github.com/fieldforcehq/fieldforce-backend/internal/handlers"
	"github.com/fieldforcehq/fieldforce-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	registry *firm.Registry,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	actorCodeHandler *handlers.ActorCodeHandler,
	userHandler *handlers.UserHandler,
	importHandler *handlers.ImportHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no firm required)
	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth operations
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Put("/auth/password", middleware.JWTProtected(cfg), authHandler.ChangePassword)

	// Roster reads (any authenticated user)
	api.Get("/actorcodes", middleware.JWTProtected(cfg), actorCodeHandler.List)
	api.Get("/actorcodes/:code", middleware.JWTProtected(cfg), actorCodeHandler.Get)
	api.Get("/users", middleware.JWTProtected(cfg), userHandler.List)
	api.Get("/users/:id", middleware.JWTProtected(cfg), userHandler.Get)

	// Admin: roster and account lifecycle (protected + admin required)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/actorcodes", actorCodeHandler.Create)
	admin.Put("/actorcodes/:code", actorCodeHandler.Update)
	admin.Delete("/actorcodes/:code", actorCodeHandler.Delete)
	admin.Post("/actorcodes/import", middleware.FeatureRequired(registry, "bulk_import"), importHandler.ImportRoster)

	admin.Post("/users", userHandler.Create)
	admin.Put("/users/:id/deactivate", userHandler.Deactivate)
	admin.Delete("/users/:id", userHandler.Delete)

	admin.Get("/identity/reconcile", actorCodeHandler.Reconcile)
}
