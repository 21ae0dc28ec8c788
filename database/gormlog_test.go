package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestSlogLogger_Trace(t *testing.T) {
	statement := func() (string, int64) { return "INSERT INTO note (title) VALUES ('x')", 0 }

	tests := []struct {
		name    string
		err     error
		begin   time.Time
		logged  bool
		message string
	}{
		{name: "Plain query stays at debug", begin: time.Now()},
		{name: "Record not found stays at debug", err: gorm.ErrRecordNotFound, begin: time.Now()},
		{
			name:  "Constraint violation stays at debug",
			err:   &pgconn.PgError{Code: "23514", ConstraintName: NonBlankTitle},
			begin: time.Now(),
		},
		{
			name:    "Other failures are warned",
			err:     errors.New("no such table: note"),
			begin:   time.Now(),
			logged:  true,
			message: "query failed",
		},
		{
			name:    "Slow query is warned",
			begin:   time.Now().Add(-time.Second),
			logged:  true,
			message: "slow query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newGormLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

			logger.Trace(context.Background(), tt.begin, statement, tt.err)

			if !tt.logged {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), "level=WARN")
			assert.Contains(t, buf.String(), tt.message)
		})
	}
}
