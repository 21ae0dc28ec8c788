package app

import (
	"log/slog"

	"moxie/config"
	"moxie/services"
	"moxie/validator"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Notes     *services.NoteService
	Config    *config.Config
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(notes services.NoteRepository, cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		Notes:     services.NewNoteService(notes),
		Config:    cfg,
		Validator: validator.New(),
		Logger:    logger,
	}
}
