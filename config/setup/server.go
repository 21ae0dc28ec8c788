package setup

import (
	"errors"
	"log/slog"
	"time"

	"moxie/app"
	"moxie/middleware"

	"github.com/gofiber/fiber/v2"
)

// NewFiberApp builds the HTTP server for the notes API, middleware and routes included
func NewFiberApp(application *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName:               "moxie",
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           30 * time.Second,
		BodyLimit:             1 << 20,
		DisableStartupMessage: application.Config.IsProduction(),
		ErrorHandler:          CustomErrorHandler(application.Logger),
	})

	ApplyMiddleware(fiberApp, application.Config, application.Logger)
	RegisterRoutes(fiberApp, application)
	return fiberApp
}

// CustomErrorHandler renders errors escaping the handlers as JSON.
// Unknown errors are reported as a 500 without their details.
func CustomErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := fiber.StatusInternalServerError, "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status, message = fiberErr.Code, fiberErr.Message
		}

		requestID := middleware.RequestID(c)
		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"request_id", requestID,
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}

		return c.Status(status).JSON(fiber.Map{
			"error":      message,
			"request_id": requestID,
		})
	}
}
