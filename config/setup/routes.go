package setup

import (
	"moxie/app"
	"moxie/handlers"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the health check and the notes API
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	notes := fiberApp.Group("/api/notes")
	notes.Get("/", handlers.GetNotes(application))
	notes.Get("/:id", handlers.GetNote(application))
	notes.Post("/", rateLimiter(writesPerMinute, "Too many notes created, slow down"), handlers.CreateNote(application))
}
