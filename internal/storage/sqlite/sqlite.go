// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// It is meant for local runs and unit tests: no server is needed, and the
// path ":memory:" gives a throwaway database. Production uses the postgres
// package.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Veikkosuhonen/cloudcafe/internal/config"
	"github.com/Veikkosuhonen/cloudcafe/internal/types"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite holds a *sql.DB, which is itself a connection pool safe for
// concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the database at cfg.Path and creates the subscriptions table if
// it does not already exist.
func New(cfg config.DatabaseSettings) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite serialises writers anyway, and every connection to ":memory:"
	// would otherwise see its own empty database.
	db.SetMaxOpenConns(1)

	// Same columns as the postgres migration; uuid and timestamptz have no
	// native SQLite type, so they are stored as TEXT and TIMESTAMP.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS subscriptions (
			id            TEXT      PRIMARY KEY,
			email         TEXT      NOT NULL,
			name          TEXT      NOT NULL,
			subscribed_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// InsertSubscription inserts one row using placeholders, so the submitted
// values are never interpreted as SQL.
func (s *SQLite) InsertSubscription(ctx context.Context, sub types.Subscription) error {
	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO subscriptions (id, email, name, subscribed_at) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("InsertSubscription: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, sub.ID.String(), sub.Email, sub.Name, sub.SubscribedAt); err != nil {
		return fmt.Errorf("InsertSubscription: exec: %w", err)
	}

	return nil
}

func (s *SQLite) Close() error {
	return s.Db.Close()
}
