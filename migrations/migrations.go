// Package migrations holds the versioned schema migrations of the moxie
// database and the runner applying them.
//
// Each migration has an upgrade and a downgrade step. The version a database
// is at is recorded in the migrate_version table, one row per repository.
package migrations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"moxie/database"

	"gorm.io/gorm"
)

const (
	// RepositoryID identifies this set of migrations in the version table.
	RepositoryID = "moxie_schema_repository"

	VersionTable = "migrate_version"
)

var (
	ErrNotVersionControlled = errors.New("database is not under version control")
	ErrUnknownVersion       = errors.New("unknown schema version")
)

// Step changes the schema of the database behind tx.
type Step func(ctx context.Context, tx *gorm.DB, dialect database.Dialect) error

// Migration is one versioned schema change.
type Migration struct {
	Version   int
	Name      string
	Upgrade   Step
	Downgrade Step
}

// All returns every migration in version order.
func All() []Migration {
	return []Migration{
		addTableNote,
		addColumnContent,
	}
}

type versionRecord struct {
	RepositoryID   string `gorm:"column:repository_id;primaryKey;size:250"`
	RepositoryPath string `gorm:"column:repository_path"`
	Version        int    `gorm:"column:version;not null"`
}

func (versionRecord) TableName() string {
	return VersionTable
}

// Runner applies migrations to a database.
type Runner struct {
	db         *database.DB
	migrations []Migration
	logger     *slog.Logger
}

func NewRunner(db *database.DB, logger *slog.Logger) *Runner {
	return &Runner{db: db, migrations: All(), logger: logger}
}

// Latest returns the version reached once every migration is applied.
func (r *Runner) Latest() int {
	if len(r.migrations) == 0 {
		return 0
	}
	return r.migrations[len(r.migrations)-1].Version
}

// VersionControl starts tracking the schema version at 0.
// A database already under version control is left as is.
func (r *Runner) VersionControl(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if !db.Migrator().HasTable(&versionRecord{}) {
		if err := db.Migrator().CreateTable(&versionRecord{}); err != nil {
			return fmt.Errorf("create version table: %w", err)
		}
	}

	var count int64
	if err := db.Model(&versionRecord{}).Where("repository_id = ?", RepositoryID).Count(&count).Error; err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	if count > 0 {
		return nil
	}

	record := versionRecord{RepositoryID: RepositoryID, RepositoryPath: "moxie/migrations", Version: 0}
	if err := db.Create(&record).Error; err != nil {
		return fmt.Errorf("start version control: %w", err)
	}
	r.logger.Info("schema put under version control", "db_url", r.db.Redacted())
	return nil
}

// Version returns the version the database schema is at.
func (r *Runner) Version(ctx context.Context) (int, error) {
	return version(r.db.WithContext(ctx))
}

func version(tx *gorm.DB) (int, error) {
	if !tx.Migrator().HasTable(&versionRecord{}) {
		return 0, ErrNotVersionControlled
	}

	var record versionRecord
	err := tx.Where("repository_id = ?", RepositoryID).Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotVersionControlled
	}
	if err != nil {
		return 0, fmt.Errorf("read version: %w", err)
	}
	return record.Version, nil
}

// Upgrade applies pending migrations up to target; target <= 0 means the latest version.
func (r *Runner) Upgrade(ctx context.Context, target int) error {
	if target <= 0 {
		target = r.Latest()
	}
	if target > r.Latest() {
		return fmt.Errorf("%w: %d (latest is %d)", ErrUnknownVersion, target, r.Latest())
	}

	current, err := r.Version(ctx)
	if err != nil {
		return err
	}

	for _, m := range r.migrations {
		if m.Version <= current || m.Version > target {
			continue
		}
		if err := r.apply(ctx, m.Upgrade, m.Version); err != nil {
			return fmt.Errorf("upgrade to %d (%s): %w", m.Version, m.Name, err)
		}
		r.logger.Info("migration applied", "version", m.Version, "name", m.Name)
	}
	return nil
}

// Downgrade reverts applied migrations, newest first, until the schema is at target.
func (r *Runner) Downgrade(ctx context.Context, target int) error {
	current, err := r.Version(ctx)
	if err != nil {
		return err
	}
	if target < 0 || target > current {
		return fmt.Errorf("%w: cannot downgrade from %d to %d", ErrUnknownVersion, current, target)
	}

	for i := len(r.migrations) - 1; i >= 0; i-- {
		m := r.migrations[i]
		if m.Version > current || m.Version <= target {
			continue
		}
		if err := r.apply(ctx, m.Downgrade, m.Version-1); err != nil {
			return fmt.Errorf("downgrade from %d (%s): %w", m.Version, m.Name, err)
		}
		r.logger.Info("migration reverted", "version", m.Version, "name", m.Name)
	}
	return nil
}

// apply runs step and records the new version in the same transaction.
// MySQL commits DDL implicitly, so there a failing step is not undone.
func (r *Runner) apply(ctx context.Context, step Step, newVersion int) error {
	dialect := r.db.Dialect()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := step(ctx, tx, dialect); err != nil {
			return err
		}
		return tx.Model(&versionRecord{}).
			Where("repository_id = ?", RepositoryID).
			Update("version", newVersion).Error
	})
}

func execAll(tx *gorm.DB, stmts ...string) error {
	for _, stmt := range stmts {
		if err := tx.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
