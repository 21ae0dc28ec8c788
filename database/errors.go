package database

import (
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

const (
	mysqlBadNull       = 1048
	mysqlCheckViolated = 3819
	// SQLSTATE class 23: integrity constraint violation.
	postgresIntegrityClass = "23"
)

// IntegrityError reports a write rejected by a database constraint
// (NOT NULL or one of the non-blank checks). The driver error is kept as is.
type IntegrityError struct {
	// Constraint names the violated constraint, or the column for NOT NULL violations.
	Constraint string
	Err        error
}

func (e *IntegrityError) Error() string {
	return "integrity error: " + e.Err.Error()
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

// IsIntegrityError reports whether err is, or wraps, an *IntegrityError.
func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

// classifyError wraps driver constraint failures in *IntegrityError and
// returns every other error untouched.
func classifyError(err error) error {
	if err == nil || IsIntegrityError(err) {
		return err
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		return &IntegrityError{Constraint: afterLastColon(sqliteErr.Error()), Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, postgresIntegrityClass) {
		name := pgErr.ConstraintName
		if name == "" {
			name = pgErr.ColumnName
		}
		return &IntegrityError{Constraint: name, Err: err}
	}

	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && (myErr.Number == mysqlBadNull || myErr.Number == mysqlCheckViolated) {
		return &IntegrityError{Constraint: firstQuoted(myErr.Message), Err: err}
	}

	return err
}

// "CHECK constraint failed: note_non_blank_title" -> "note_non_blank_title"
func afterLastColon(msg string) string {
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return strings.TrimSpace(msg[i+2:])
	}
	return msg
}

// "Check constraint 'note_non_blank_title' is violated." -> "note_non_blank_title"
func firstQuoted(msg string) string {
	start := strings.IndexByte(msg, '\'')
	if start < 0 {
		return msg
	}
	end := strings.IndexByte(msg[start+1:], '\'')
	if end < 0 {
		return msg
	}
	return msg[start+1 : start+1+end]
}
