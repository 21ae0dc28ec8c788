package services

import (
	"context"

	"moxie/models"
)

// NoteService handles business logic for notes
type NoteService struct {
	repo NoteRepository
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

// Get retrieves a note by its id
func (ns *NoteService) Get(ctx context.Context, id int64) (*models.Note, error) {
	note, err := ns.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// List retrieves every note, ordered by id
func (ns *NoteService) List(ctx context.Context) ([]models.Note, error) {
	return ns.repo.FindAll(ctx)
}

// Create stores a new note. Title and content are checked by the database.
func (ns *NoteService) Create(ctx context.Context, n models.NewNote) (*models.Note, error) {
	return ns.repo.Create(ctx, n)
}
