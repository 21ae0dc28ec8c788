package migrations

import (
	"context"
	"fmt"
	"strings"

	"moxie/database"

	"gorm.io/gorm"
)

// ContentPlaceholder prefixes the title of pre-existing notes to fill their new content column.
const ContentPlaceholder = "TODO content: "

const rebuildTable = "note_rebuild"

// addColumnContent adds a mandatory, non-blank content column. Rows that
// already exist get ContentPlaceholder followed by their title.
var addColumnContent = Migration{
	Version:   2,
	Name:      "add_column_content",
	Upgrade:   upgradeContent,
	Downgrade: downgradeContent,
}

func upgradeContent(ctx context.Context, tx *gorm.DB, dialect database.Dialect) error {
	table := database.NoteTable
	backfill := dialect.Concat("?", "title")

	if !dialect.AltersInPlace() {
		// SQLite: create the target table, copy with backfill, swap.
		return rebuild(tx, dialect, table,
			fmt.Sprintf("INSERT INTO %s (id, title, content) SELECT id, title, %s FROM %s",
				rebuildTable, backfill, table.Name),
			ContentPlaceholder)
	}

	content, _ := table.Column("content")
	check, _ := table.Check("content")

	nullable := content
	nullable.Nullable = true
	if err := execAll(tx, dialect.AddColumnSQL(table.Name, nullable)); err != nil {
		return err
	}
	if err := execAll(tx, dialect.ColumnCommentSQL(table.Name, content)...); err != nil {
		return err
	}

	update := fmt.Sprintf("UPDATE %s SET content = %s", table.Name, backfill)
	if err := tx.Exec(update, ContentPlaceholder).Error; err != nil {
		return err
	}

	return execAll(tx,
		dialect.SetNotNullSQL(table.Name, content),
		dialect.AddCheckSQL(table.Name, check),
	)
}

func downgradeContent(ctx context.Context, tx *gorm.DB, dialect database.Dialect) error {
	table := database.NoteTableV1

	if !dialect.AltersInPlace() {
		columns := strings.Join(table.ColumnNames(), ", ")
		return rebuild(tx, dialect, table,
			fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s", rebuildTable, columns, columns, table.Name))
	}

	return execAll(tx,
		dialect.DropCheckSQL(table.Name, database.NonBlankContent),
		dialect.DropColumnSQL(table.Name, "content"),
	)
}

// rebuild replaces the note table by target, copying rows with copySQL.
func rebuild(tx *gorm.DB, dialect database.Dialect, target database.Table, copySQL string, args ...interface{}) error {
	if err := execAll(tx, dialect.CreateTableSQL(target.Renamed(rebuildTable), false)...); err != nil {
		return err
	}
	if err := tx.Exec(copySQL, args...).Error; err != nil {
		return err
	}
	return execAll(tx,
		dialect.DropTableSQL(target.Name),
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s", rebuildTable, target.Name),
	)
}
