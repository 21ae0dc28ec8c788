package database

import (
	"context"
	"log/slog"
)

type providerOptions struct {
	createSchema bool
	logger       *slog.Logger
}

// Option configures a Provider.
type Option func(*providerOptions)

// WithCreateSchema creates the current schema on open, without migrations.
// Meant for bootstrap and tests; such a database cannot be upgraded later.
func WithCreateSchema(create bool) Option {
	return func(o *providerOptions) {
		o.createSchema = create
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *providerOptions) {
		o.logger = logger
	}
}

// Provider is the entry point to every DAO. It owns the connection pool.
type Provider struct {
	db     *DB
	notes  *NoteDAO
	owned  bool
	closed bool
}

// NewProvider opens rawURL and wires the DAOs on top of it.
// Without WithCreateSchema the schema is expected to be migrated already.
func NewProvider(ctx context.Context, rawURL string, opts ...Option) (*Provider, error) {
	o := applyOptions(opts)

	db, err := New(ctx, rawURL, o.logger)
	if err != nil {
		return nil, err
	}

	p, err := newProvider(ctx, db, o)
	if err != nil {
		db.Close()
		return nil, err
	}
	p.owned = true
	return p, nil
}

// NewProviderWithDB wires the DAOs on an already open database. Close leaves db open.
func NewProviderWithDB(ctx context.Context, db *DB, opts ...Option) (*Provider, error) {
	return newProvider(ctx, db, applyOptions(opts))
}

func applyOptions(opts []Option) providerOptions {
	o := providerOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newProvider(ctx context.Context, db *DB, o providerOptions) (*Provider, error) {
	if o.createSchema {
		if err := db.CreateSchema(ctx); err != nil {
			return nil, err
		}
		o.logger.Debug("schema created", "db_url", db.Redacted())
	}

	sessions := NewSessionFactory(db.DB, o.logger)
	return &Provider{
		db:    db,
		notes: NewNoteDAO(sessions),
	}, nil
}

// Notes returns the DAO giving access to notes.
func (p *Provider) Notes() *NoteDAO {
	return p.notes
}

// URL returns the database URL, safe for logging.
func (p *Provider) URL() string {
	return p.db.Redacted()
}

// Dialect returns the engine behind the provider.
func (p *Provider) Dialect() Dialect {
	return p.db.Dialect()
}

func (p *Provider) DB() *DB {
	return p.db
}

// Close releases the connection pool when the provider opened it.
func (p *Provider) Close() error {
	if !p.owned || p.closed {
		return nil
	}
	p.closed = true
	return p.db.Close()
}
