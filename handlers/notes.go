package handlers

import (
	"errors"
	"strconv"

	"moxie/app"
	"moxie/database"
	"moxie/models"
	"moxie/services"

	"github.com/gofiber/fiber/v2"
)

// GetNotes lists every note, ordered by id
func GetNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := a.Notes.List(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

// GetNote retrieves a single note by id
func GetNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawID := c.Params("id")
		if err := a.Validator.ValidateVar("id", rawID, "required,number"); err != nil {
			return badRequest(c, err.Error())
		}

		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return badRequest(c, "id is out of range")
		}

		note, err := a.Notes.Get(c.UserContext(), id)
		if errors.Is(err, services.ErrNoteNotFound) {
			return notFound(c, "Note not found")
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch note", err)
		}

		return success(c, fiber.Map{"note": note})
	}
}

// CreateNote stores a new note
func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := models.DecodeNewNote(c.Body())
		if err != nil {
			return badRequest(c, "Invalid request body")
		}

		note, err := a.Notes.Create(c.UserContext(), req)
		if database.IsIntegrityError(err) {
			return unprocessable(c, err.Error())
		}
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create note", err)
		}

		return created(c, fiber.Map{"note": note})
	}
}
