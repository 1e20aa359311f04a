package store

import (
	"context"
	"database/sql"
	"errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("store: not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx so every query method
// composes into a transaction unchanged.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db DBTX

	// sqlDB is the root connection; nil on a tx-bound store.
	sqlDB *sql.DB
}

func New(sqlDB *sql.DB) *Store {
	return &Store{db: sqlDB, sqlDB: sqlDB}
}

// Transact runs fn against a tx-bound store. The transaction commits if
// fn returns nil and rolls back otherwise.
func (s *Store) Transact(ctx context.Context, fn func(*Store) error) error {
	if s.sqlDB == nil {
		return errors.New("store: nested transaction")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(&Store{db: tx}); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// IsUniqueViolation reports whether err is a SQLite uniqueness or
// primary-key constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT, sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
