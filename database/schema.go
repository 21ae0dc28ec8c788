package database

import (
	"fmt"
	"strings"
)

// Dialect identifies the relational engine behind a database URL.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// ColumnType is the logical type of a column; each dialect maps it to a concrete SQL type.
type ColumnType int

const (
	TypeInteger ColumnType = iota
	TypeText
)

// Column describes one column of a table.
type Column struct {
	Name       string
	Type       ColumnType
	PrimaryKey bool
	Nullable   bool
	Comment    string
}

// NonBlankCheck is a named check constraint requiring Column to contain
// something other than spaces. Only the space character is trimmed.
type NonBlankCheck struct {
	Name   string
	Column string
}

// Table describes a table: its columns in order plus its check constraints.
type Table struct {
	Name    string
	Comment string
	Columns []Column
	Checks  []NonBlankCheck
}

const (
	NoteTableName = "note"

	NonBlankTitle   = "note_non_blank_title"
	NonBlankContent = "note_non_blank_content"
)

var (
	noteID = Column{Name: "id", Type: TypeInteger, PrimaryKey: true}

	noteTitle = Column{
		Name:    "title",
		Type:    TypeText,
		Comment: "@name title\n@synopsis Short title of the note, either in interrogative (How to do X?) or imperative (Do X)",
	}

	noteContent = Column{
		Name:    "content",
		Type:    TypeText,
		Comment: "@name content\n@synopsis Body of the note",
	}

	noteComment = "@name MoxieNote\n@synopsis A note represents an atomic recipe, how-to, a gist."
)

// NoteTableV1 is the first revision of the note table: id and title only.
var NoteTableV1 = Table{
	Name:    NoteTableName,
	Comment: noteComment,
	Columns: []Column{noteID, noteTitle},
	Checks:  []NonBlankCheck{{Name: NonBlankTitle, Column: "title"}},
}

// NoteTable is the current note table.
var NoteTable = Table{
	Name:    NoteTableName,
	Comment: noteComment,
	Columns: []Column{noteID, noteTitle, noteContent},
	Checks: []NonBlankCheck{
		{Name: NonBlankTitle, Column: "title"},
		{Name: NonBlankContent, Column: "content"},
	},
}

// Renamed returns a copy of t under another name.
func (t Table) Renamed(name string) Table {
	t.Name = name
	return t
}

// Column returns the column with the given name.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Check returns the check constraint guarding the given column.
func (t Table) Check(column string) (NonBlankCheck, bool) {
	for _, c := range t.Checks {
		if c.Column == column {
			return c, true
		}
	}
	return NonBlankCheck{}, false
}

// ColumnNames lists the column names in declaration order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// NonBlankExpr renders the predicate "column is not empty once spaces are trimmed".
// Tabs, newlines and the like are not trimmed.
func (d Dialect) NonBlankExpr(column string) string {
	switch d {
	case DialectPostgres:
		return fmt.Sprintf("length(btrim(%s, ' ')) > 0", column)
	case DialectMySQL:
		// TRIM without a remstr removes spaces only.
		return fmt.Sprintf("char_length(trim(%s)) > 0", column)
	default:
		return fmt.Sprintf("length(trim(%s, ' ')) > 0", column)
	}
}

// Concat renders the string concatenation of two SQL expressions.
func (d Dialect) Concat(left, right string) string {
	switch d {
	case DialectMySQL:
		return fmt.Sprintf("CONCAT(%s, %s)", left, right)
	case DialectPostgres:
		return fmt.Sprintf("CAST(%s AS VARCHAR) || %s", left, right)
	default:
		return fmt.Sprintf("%s || %s", left, right)
	}
}

func (d Dialect) sqlType(c Column) string {
	switch c.Type {
	case TypeInteger:
		if c.PrimaryKey && d == DialectPostgres {
			return "SERIAL"
		}
		return "INTEGER"
	default:
		if d == DialectMySQL {
			return "TEXT"
		}
		return "VARCHAR"
	}
}

// ColumnDefinition renders a column definition as used in CREATE TABLE and ADD COLUMN.
func (d Dialect) ColumnDefinition(c Column) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(d.sqlType(c))

	switch {
	case c.PrimaryKey && d == DialectMySQL:
		b.WriteString(" NOT NULL AUTO_INCREMENT PRIMARY KEY")
	case c.PrimaryKey && d == DialectPostgres:
		b.WriteString(" PRIMARY KEY")
	case c.PrimaryKey:
		b.WriteString(" NOT NULL PRIMARY KEY")
	case c.Nullable && d == DialectMySQL:
		b.WriteString(" NULL")
	case !c.Nullable:
		b.WriteString(" NOT NULL")
	}
	return b.String()
}

// CheckDefinition renders a named check constraint clause.
func (d Dialect) CheckDefinition(c NonBlankCheck) string {
	return fmt.Sprintf("CONSTRAINT %s CHECK (%s)", c.Name, d.NonBlankExpr(c.Column))
}

// CreateTableSQL renders the statements creating t, followed by its comments where the engine keeps them.
func (d Dialect) CreateTableSQL(t Table, ifNotExists bool) []string {
	defs := make([]string, 0, len(t.Columns)+len(t.Checks))
	for _, c := range t.Columns {
		defs = append(defs, d.ColumnDefinition(c))
	}
	for _, c := range t.Checks {
		defs = append(defs, d.CheckDefinition(c))
	}

	create := "CREATE TABLE "
	if ifNotExists {
		create += "IF NOT EXISTS "
	}
	stmts := []string{fmt.Sprintf("%s%s (\n\t%s\n)", create, t.Name, strings.Join(defs, ",\n\t"))}

	if d == DialectPostgres {
		stmts = append(stmts, d.commentSQL(t)...)
	}
	return stmts
}

func (d Dialect) commentSQL(t Table) []string {
	var stmts []string
	if t.Comment != "" {
		stmts = append(stmts, fmt.Sprintf("COMMENT ON TABLE %s IS %s", t.Name, quoteLiteral(t.Comment)))
	}
	for _, c := range t.Columns {
		stmts = append(stmts, d.columnCommentSQL(t.Name, c)...)
	}
	return stmts
}

// ColumnCommentSQL renders the comment of a column added to an existing table.
// Only postgres keeps comments; other engines get no statement.
func (d Dialect) ColumnCommentSQL(table string, c Column) []string {
	if d != DialectPostgres {
		return nil
	}
	return d.columnCommentSQL(table, c)
}

func (d Dialect) columnCommentSQL(table string, c Column) []string {
	if c.Comment == "" {
		return nil
	}
	return []string{fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s", table, c.Name, quoteLiteral(c.Comment))}
}

// DropTableSQL renders the statement dropping a table.
func (d Dialect) DropTableSQL(table string) string {
	return "DROP TABLE " + table
}

// AddColumnSQL renders an in-place ADD COLUMN.
func (d Dialect) AddColumnSQL(table string, c Column) string {
	return fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, d.ColumnDefinition(c))
}

// SetNotNullSQL renders the statement tightening a column to NOT NULL.
func (d Dialect) SetNotNullSQL(table string, c Column) string {
	if d == DialectMySQL {
		c.Nullable = false
		return fmt.Sprintf("ALTER TABLE %s MODIFY %s", table, d.ColumnDefinition(c))
	}
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET NOT NULL", table, c.Name)
}

// AddCheckSQL renders the statement adding a check constraint to an existing table.
func (d Dialect) AddCheckSQL(table string, c NonBlankCheck) string {
	return fmt.Sprintf("ALTER TABLE %s ADD %s", table, d.CheckDefinition(c))
}

// DropCheckSQL renders the statement dropping a check constraint.
func (d Dialect) DropCheckSQL(table string, name string) string {
	if d == DialectMySQL {
		return fmt.Sprintf("ALTER TABLE %s DROP CHECK %s", table, name)
	}
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s", table, name)
}

// DropColumnSQL renders an in-place DROP COLUMN.
func (d Dialect) DropColumnSQL(table string, column string) string {
	return fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, column)
}

// AltersInPlace reports whether the engine can add constraints to existing
// columns. SQLite cannot; tables are rebuilt instead.
func (d Dialect) AltersInPlace() bool {
	return d != DialectSQLite
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
