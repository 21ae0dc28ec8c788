package database

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// SessionFactory opens units of work against a database.
type SessionFactory struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewSessionFactory(db *gorm.DB, logger *slog.Logger) *SessionFactory {
	return &SessionFactory{db: db, logger: logger}
}

// Do runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back when it returns an error or panics; the
// error (or panic) is passed on to the caller. Constraint failures come
// back as *IntegrityError.
func (f *SessionFactory) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tx := f.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	finished := false
	defer func() {
		if finished {
			return
		}
		p := recover()
		f.rollback(ctx, tx, fmt.Errorf("aborted: %v", p))
		if p != nil {
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		finished = true
		f.rollback(ctx, tx, err)
		return classifyError(err)
	}

	finished = true
	if err := tx.Commit().Error; err != nil {
		return classifyError(err)
	}
	f.logger.DebugContext(ctx, "session committed")
	return nil
}

func (f *SessionFactory) rollback(ctx context.Context, tx *gorm.DB, cause error) {
	f.logger.DebugContext(ctx, "session rolling back", "cause", cause)
	if err := tx.Rollback().Error; err != nil {
		f.logger.WarnContext(ctx, "session rollback failed", "error", err)
	}
}
