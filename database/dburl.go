package database

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultURL is the database used when no URL is configured: a file next to the working directory.
const DefaultURL = "sqlite:///moxie.db"

const sqliteMemory = ":memory:"

var ErrUnsupportedURL = errors.New("unsupported database url")

// Target is a parsed database URL.
type Target struct {
	Dialect Dialect
	// DSN is the driver specific connection string.
	DSN string
	raw *url.URL
}

// ParseURL parses a database URL of the form scheme://[user[:password]@]host[:port]/path.
//
// SQLite follows the usual three/four slash convention:
//
//	sqlite:///relative/path.db
//	sqlite:////absolute/path.db
//	sqlite:///:memory:
//	sqlite:///file:notes.db?mode=memory&cache=shared
//
// The query of a sqlite URL is passed on to the driver.
func ParseURL(raw string) (Target, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrUnsupportedURL, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "sqlite", "sqlite3":
		path := strings.TrimPrefix(u.Path, "/")
		if path == "" {
			path = sqliteMemory
		}
		if u.RawQuery != "" {
			path += "?" + u.RawQuery
		}
		return Target{Dialect: DialectSQLite, DSN: path, raw: u}, nil

	case "postgres", "postgresql":
		if u.Host == "" {
			return Target{}, fmt.Errorf("%w: missing host in %q", ErrUnsupportedURL, u.Redacted())
		}
		return Target{Dialect: DialectPostgres, DSN: raw, raw: u}, nil

	case "mysql":
		if u.Host == "" {
			return Target{}, fmt.Errorf("%w: missing host in %q", ErrUnsupportedURL, u.Redacted())
		}
		return Target{Dialect: DialectMySQL, DSN: mysqlDSN(u), raw: u}, nil

	default:
		return Target{}, fmt.Errorf("%w: scheme %q", ErrUnsupportedURL, u.Scheme)
	}
}

func mysqlDSN(u *url.URL) string {
	cfg := mysqldriver.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = u.Host
	if _, _, err := net.SplitHostPort(u.Host); err != nil {
		cfg.Addr = net.JoinHostPort(u.Host, "3306")
	}
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	cfg.ParseTime = true

	if query := u.Query(); len(query) > 0 {
		cfg.Params = make(map[string]string, len(query))
		for key := range query {
			cfg.Params[key] = query.Get(key)
		}
	}
	return cfg.FormatDSN()
}

// Redacted returns the URL with its password masked, safe for logging.
func (t Target) Redacted() string {
	if t.raw == nil {
		return ""
	}
	return t.raw.Redacted()
}

// InMemory reports whether the target is a transient SQLite database.
func (t Target) InMemory() bool {
	if t.Dialect != DialectSQLite {
		return false
	}
	name, query, _ := strings.Cut(t.DSN, "?")
	name = strings.TrimPrefix(name, "file:")
	if name == sqliteMemory {
		return true
	}
	values, err := url.ParseQuery(query)
	return err == nil && values.Get("mode") == "memory"
}

// FilePath returns the file behind a SQLite target, without the "file:"
// prefix and driver parameters. It is empty for in-memory databases.
func (t Target) FilePath() string {
	if t.Dialect != DialectSQLite || t.InMemory() {
		return ""
	}
	name, _, _ := strings.Cut(t.DSN, "?")
	return strings.TrimPrefix(name, "file:")
}

// Dialector returns the gorm dialector for the target.
func (t Target) Dialector() gorm.Dialector {
	switch t.Dialect {
	case DialectPostgres:
		return postgres.Open(t.DSN)
	case DialectMySQL:
		return mysql.Open(t.DSN)
	default:
		return sqlite.Open(t.DSN)
	}
}
