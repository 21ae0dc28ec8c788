package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialect_NonBlankExpr(t *testing.T) {
	assert.Equal(t, "length(trim(title, ' ')) > 0", DialectSQLite.NonBlankExpr("title"))
	assert.Equal(t, "length(btrim(title, ' ')) > 0", DialectPostgres.NonBlankExpr("title"))
	assert.Equal(t, "char_length(trim(title)) > 0", DialectMySQL.NonBlankExpr("title"))
}

func TestDialect_CreateTableSQL(t *testing.T) {
	t.Run("SQLite", func(t *testing.T) {
		stmts := DialectSQLite.CreateTableSQL(NoteTable, true)
		require.Len(t, stmts, 1)

		create := stmts[0]
		assert.True(t, strings.HasPrefix(create, "CREATE TABLE IF NOT EXISTS note ("))
		assert.Contains(t, create, "id INTEGER NOT NULL PRIMARY KEY")
		assert.Contains(t, create, "title VARCHAR NOT NULL")
		assert.Contains(t, create, "content VARCHAR NOT NULL")
		assert.Contains(t, create, "CONSTRAINT note_non_blank_title CHECK (length(trim(title, ' ')) > 0)")
		assert.Contains(t, create, "CONSTRAINT note_non_blank_content CHECK (length(trim(content, ' ')) > 0)")
	})

	t.Run("Postgres adds comments", func(t *testing.T) {
		stmts := DialectPostgres.CreateTableSQL(NoteTable, false)
		require.Len(t, stmts, 4)

		assert.True(t, strings.HasPrefix(stmts[0], "CREATE TABLE note ("))
		assert.Contains(t, stmts[0], "id SERIAL PRIMARY KEY")
		assert.Equal(t, "COMMENT ON TABLE note IS '@name MoxieNote\n@synopsis A note represents an atomic recipe, how-to, a gist.'", stmts[1])
		assert.True(t, strings.HasPrefix(stmts[2], "COMMENT ON COLUMN note.title IS"))
		assert.True(t, strings.HasPrefix(stmts[3], "COMMENT ON COLUMN note.content IS"))
	})

	t.Run("MySQL", func(t *testing.T) {
		stmts := DialectMySQL.CreateTableSQL(NoteTableV1, false)
		require.Len(t, stmts, 1)

		assert.Contains(t, stmts[0], "id INTEGER NOT NULL AUTO_INCREMENT PRIMARY KEY")
		assert.Contains(t, stmts[0], "title TEXT NOT NULL")
		assert.NotContains(t, stmts[0], "content")
	})
}

func TestDialect_AlterStatements(t *testing.T) {
	content, ok := NoteTable.Column("content")
	require.True(t, ok)
	check, ok := NoteTable.Check("content")
	require.True(t, ok)

	nullable := content
	nullable.Nullable = true

	assert.Equal(t, "ALTER TABLE note ADD COLUMN content VARCHAR", DialectPostgres.AddColumnSQL("note", nullable))
	assert.Equal(t, "ALTER TABLE note ADD COLUMN content TEXT NULL", DialectMySQL.AddColumnSQL("note", nullable))

	assert.Equal(t, "ALTER TABLE note ALTER COLUMN content SET NOT NULL", DialectPostgres.SetNotNullSQL("note", content))
	assert.Equal(t, "ALTER TABLE note MODIFY content TEXT NOT NULL", DialectMySQL.SetNotNullSQL("note", nullable))

	assert.Equal(t,
		"ALTER TABLE note ADD CONSTRAINT note_non_blank_content CHECK (length(btrim(content, ' ')) > 0)",
		DialectPostgres.AddCheckSQL("note", check))
	assert.Equal(t, "ALTER TABLE note DROP CONSTRAINT note_non_blank_content", DialectPostgres.DropCheckSQL("note", check.Name))
	assert.Equal(t, "ALTER TABLE note DROP CHECK note_non_blank_content", DialectMySQL.DropCheckSQL("note", check.Name))

	assert.False(t, DialectSQLite.AltersInPlace())
	assert.True(t, DialectPostgres.AltersInPlace())
}

func TestDialect_ColumnCommentSQL(t *testing.T) {
	content, ok := NoteTable.Column("content")
	require.True(t, ok)

	stmts := DialectPostgres.ColumnCommentSQL("note", content)
	require.Len(t, stmts, 1)
	assert.Equal(t, "COMMENT ON COLUMN note.content IS '@name content\n@synopsis Body of the note'", stmts[0])

	// Same statement as the one emitted when the table is created.
	assert.Contains(t, DialectPostgres.CreateTableSQL(NoteTable, false), stmts[0])

	assert.Empty(t, DialectSQLite.ColumnCommentSQL("note", content))
	assert.Empty(t, DialectMySQL.ColumnCommentSQL("note", content))
	assert.Empty(t, DialectPostgres.ColumnCommentSQL("note", noteID))
}

func TestTable_Helpers(t *testing.T) {
	assert.Equal(t, []string{"id", "title", "content"}, NoteTable.ColumnNames())
	assert.Equal(t, []string{"id", "title"}, NoteTableV1.ColumnNames())

	renamed := NoteTable.Renamed("note_copy")
	assert.Equal(t, "note_copy", renamed.Name)
	assert.Equal(t, NoteTableName, NoteTable.Name)

	_, ok := NoteTableV1.Column("content")
	assert.False(t, ok)
	_, ok = NoteTableV1.Check("content")
	assert.False(t, ok)
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, "'it''s'", quoteLiteral("it's"))
}
