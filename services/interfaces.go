package services

import (
	"context"

	"moxie/models"
)

// NoteRepository defines the interface for note data access
type NoteRepository interface {
	Create(ctx context.Context, n models.NewNote) (*models.Note, error)
	FindByID(ctx context.Context, id int64) (*models.Note, error)
	FindAll(ctx context.Context) ([]models.Note, error)
}
