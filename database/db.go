package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/gorm"
)

// DB is an open connection pool to the configured database.
type DB struct {
	*gorm.DB
	target Target
}

// New opens the database at rawURL.
func New(ctx context.Context, rawURL string, logger *slog.Logger) (*DB, error) {
	target, err := ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	if path := target.FilePath(); path != "" {
		// Ensure directory exists
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	gdb, err := gorm.Open(target.Dialector(), &gorm.Config{
		Logger:                 newGormLogger(logger),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", target.Redacted(), err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying database: %w", err)
	}

	// Configure connection pool
	if target.Dialect == DialectSQLite {
		// One connection: an in-memory database lives and dies with it.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}

	db := &DB{DB: gdb, target: target}
	if target.Dialect == DialectSQLite {
		if err := db.configureSQLite(ctx); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	return db, nil
}

func (db *DB) configureSQLite(ctx context.Context) error {
	if !db.target.InMemory() {
		// Enable WAL mode for better concurrency
		if err := db.WithContext(ctx).Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Enable foreign keys
	if err := db.WithContext(ctx).Exec("PRAGMA foreign_keys=ON").Error; err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	return nil
}

// CreateSchema creates the current schema directly from its description,
// bypassing versioned migrations. Existing tables are left alone.
func (db *DB) CreateSchema(ctx context.Context) error {
	stmts := db.Dialect().CreateTableSQL(NoteTable, true)
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range stmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("schema creation failed: %w", err)
			}
		}
		return nil
	})
}

// Dialect returns the engine behind the connection.
func (db *DB) Dialect() Dialect {
	return db.target.Dialect
}

// Redacted returns the connection URL with credentials masked.
func (db *DB) Redacted() string {
	return db.target.Redacted()
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
