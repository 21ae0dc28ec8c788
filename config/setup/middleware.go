package setup

import (
	"log/slog"
	"time"

	"moxie/config"
	"moxie/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const (
	requestsPerMinute = 200
	writesPerMinute   = 30
)

// ApplyMiddleware installs the middleware shared by every route
func ApplyMiddleware(app *fiber.App, cfg *config.Config, logger *slog.Logger) {
	app.Use(recover.New())
	app.Use(middleware.StructuredLogger(logger))
	app.Use(middleware.Security())
	app.Use(cors.New(corsConfig(cfg)))
	app.Use(rateLimiter(requestsPerMinute, "Rate limit exceeded"))
}

func corsConfig(cfg *config.Config) cors.Config {
	return cors.Config{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
		ExposeHeaders: middleware.RequestIDHeader,
		MaxAge:        86400,
	}
}

// rateLimiter allows max requests per minute and client IP
func rateLimiter(max int, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": message})
		},
	})
}
