// Package database wraps a single user-supplied SQLite file: loading it
// from an upload, inspecting its schema, and executing ad-hoc SQL
// against it. One DB is live per session at most; the session layer
// owns that invariant.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	// Pure Go SQLite driver, registered as "sqlite".
	_ "modernc.org/sqlite"
)

// DB is an open connection to one SQLite database file.
type DB struct {
	sqldb *sql.DB
	path  string
	name  string
	owned bool // whether Close removes the backing file
}

// Name returns the display name of the database, normally the original
// upload filename.
func (db *DB) Name() string {
	if db == nil {
		return ""
	}
	return db.name
}

// Path returns the filesystem path of the backing file.
func (db *DB) Path() string {
	if db == nil {
		return ""
	}
	return db.path
}

// Close closes the connection and, for uploaded databases, removes the
// backing temp file. Safe to call on nil and more than once.
func (db *DB) Close() error {
	if db == nil || db.sqldb == nil {
		return nil
	}
	err := db.sqldb.Close()
	db.sqldb = nil
	if db.owned {
		if rmErr := os.Remove(db.path); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = rmErr
		}
	}
	return err
}

// open connects to the SQLite file at path and verifies it is usable.
// The catalog probe catches files that carry a valid header but are
// corrupt past it, so they fail here instead of on the first query.
func open(ctx context.Context, path string) (*sql.DB, error) {
	sqldb, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}

	// One session, one writer. A single connection also keeps mutating
	// statements visible to every later statement in the session.
	sqldb.SetMaxOpenConns(1)

	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, err
	}

	var n int
	if err := sqldb.QueryRowContext(ctx, `SELECT count(*) FROM sqlite_master`).Scan(&n); err != nil {
		_ = sqldb.Close()
		return nil, err
	}

	return sqldb, nil
}

// quoteIdent quotes a SQL identifier for SQLite, doubling any embedded
// quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (db *DB) ready() error {
	if db == nil || db.sqldb == nil {
		return ErrNoConnection
	}
	return nil
}

// Ping verifies the connection is still alive.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.ready(); err != nil {
		return err
	}
	if err := db.sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNoConnection, err)
	}
	return nil
}
