package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/innerventory/server/internal/storage"
)

// Ensure Store satisfies the storage.Repository interface at compile time.
var _ storage.Repository = (*Store)(nil)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store provides SQLite-backed persistence for local development and tests.
type Store struct {
	conn   *sql.DB
	db     querier
	tx     *sql.Tx
	closed *atomic.Bool
}

// NewStore opens the database at dsn (a file path, "file:" URI or ":memory:") and creates the schema.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	dsn = strings.TrimPrefix(strings.TrimPrefix(dsn, "sqlite://"), "sqlite:")
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serializes writers; a single connection keeps in-memory databases alive and
	// makes every transaction exclusive.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{conn: conn, db: conn, closed: new(atomic.Bool)}
	if err := s.migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.conn != nil && s.tx == nil && !s.closed.Swap(true) {
		s.conn.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`PRAGMA busy_timeout = 5000;`,
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'Staff',
			created_at TEXT NOT NULL
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_unique_idx ON users (email COLLATE NOCASE);`,
		`CREATE TABLE IF NOT EXISTS bras (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			size TEXT NOT NULL,
			quantity INTEGER NOT NULL DEFAULT 0,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			event_date TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attendees (
			id TEXT PRIMARY KEY,
			event_id TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL DEFAULT '',
			size_before TEXT NOT NULL DEFAULT '',
			size_after TEXT NOT NULL DEFAULT '',
			bra_size_1 TEXT NOT NULL DEFAULT '',
			bra_size_2 TEXT NOT NULL DEFAULT '',
			fitter_name TEXT NOT NULL DEFAULT '',
			phone_number TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS attendees_event_position_idx ON attendees (event_id, position);`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// Ping reports whether the store is still open. It never touches the single
// connection, so it cannot queue behind a running transaction.
func (s *Store) Ping(ctx context.Context) error {
	if s.closed.Load() {
		return sql.ErrConnDone
	}
	return ctx.Err()
}

func (s *Store) Users() storage.UserStore   { return &userStore{db: s.db} }
func (s *Store) Bras() storage.BraStore     { return &braStore{db: s.db} }
func (s *Store) Events() storage.EventStore { return &eventStore{db: s.db} }
func (s *Store) Audit() storage.AuditStore  { return &auditStore{db: s.db} }

// WithTx runs fn inside a transaction, committing when fn returns nil.
func (s *Store) WithTx(ctx context.Context, fn func(context.Context, storage.Repository) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	wrapped := &Store{conn: s.conn, db: tx, tx: tx, closed: s.closed}
	if err := fn(ctx, wrapped); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return storage.ErrAlreadyExists
		}
	}
	return err
}

func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored time %q: %w", value, err)
	}
	return t.UTC(), nil
}

func now() string {
	return formatTime(time.Now())
}
