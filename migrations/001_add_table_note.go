package migrations

import (
	"context"

	"moxie/database"

	"gorm.io/gorm"
)

// addTableNote creates the note table with id and a non-blank title.
var addTableNote = Migration{
	Version: 1,
	Name:    "add_table_note",
	Upgrade: func(ctx context.Context, tx *gorm.DB, dialect database.Dialect) error {
		return execAll(tx, dialect.CreateTableSQL(database.NoteTableV1, false)...)
	},
	Downgrade: func(ctx context.Context, tx *gorm.DB, dialect database.Dialect) error {
		return execAll(tx, dialect.DropTableSQL(database.NoteTableName))
	},
}
