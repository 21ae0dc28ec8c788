package database

import (
	"context"
	"errors"

	"moxie/models"

	"gorm.io/gorm"
)

// noteRecord maps a row of the note table.
type noteRecord struct {
	ID      int64   `gorm:"column:id;primaryKey"`
	Title   *string `gorm:"column:title"`
	Content *string `gorm:"column:content"`
}

func (noteRecord) TableName() string {
	return NoteTableName
}

func (r noteRecord) toModel() models.Note {
	note := models.Note{ID: r.ID}
	if r.Title != nil {
		note.Title = *r.Title
	}
	if r.Content != nil {
		note.Content = *r.Content
	}
	return note
}

// NoteDAO gives access to stored notes. Every call runs in its own session.
type NoteDAO struct {
	sessions *SessionFactory
}

func NewNoteDAO(sessions *SessionFactory) *NoteDAO {
	return &NoteDAO{sessions: sessions}
}

// Create inserts a note and returns it with its assigned id.
// Missing, empty or blank fields are rejected by the database with an *IntegrityError.
func (d *NoteDAO) Create(ctx context.Context, n models.NewNote) (*models.Note, error) {
	record := noteRecord{Title: n.Title, Content: n.Content}

	err := d.sessions.Do(ctx, func(tx *gorm.DB) error {
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	note := record.toModel()
	return &note, nil
}

// FindByID returns the note with the given id, or nil when there is none.
func (d *NoteDAO) FindByID(ctx context.Context, id int64) (*models.Note, error) {
	var record noteRecord
	found := true

	err := d.sessions.Do(ctx, func(tx *gorm.DB) error {
		err := tx.Where("id = ?", id).Take(&record).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
			return nil
		}
		return err
	})
	if err != nil || !found {
		return nil, err
	}

	note := record.toModel()
	return &note, nil
}

// FindAll returns every note ordered by id.
func (d *NoteDAO) FindAll(ctx context.Context) ([]models.Note, error) {
	var records []noteRecord

	err := d.sessions.Do(ctx, func(tx *gorm.DB) error {
		return tx.Order("id").Find(&records).Error
	})
	if err != nil {
		return nil, err
	}

	// Initialize with empty slice to avoid returning nil
	notes := make([]models.Note, 0, len(records))
	for _, r := range records {
		notes = append(notes, r.toModel())
	}
	return notes, nil
}
