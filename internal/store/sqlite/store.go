// Package sqlite provides a SQLite-backed ledger store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"marketplace-ledger-service/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_records (
	kind       TEXT    NOT NULL,
	id         TEXT    NOT NULL,
	value      BLOB    NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (kind, id)
);`

type Store struct {
	sqlDB *sql.DB
}

// Open opens the database file at path and creates the records table.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open db: %w", err)
	}
	// one writer at a time
	sqlDB.SetMaxOpenConns(1)
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: ping db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) (err error) {
	if s == nil || s.sqlDB == nil {
		return store.ErrClosed
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(&sqlTx{tx: tx}); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) Get(ctx context.Context, key store.Key) ([]byte, bool, error) {
	const q = `SELECT value FROM ledger_records WHERE kind = ? AND id = ?`
	var value []byte
	err := t.tx.QueryRowContext(ctx, q, key.Kind.String(), key.ID).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: get %s: %w", key, err)
	}
	return value, true, nil
}

func (t *sqlTx) Set(ctx context.Context, key store.Key, value []byte) error {
	const q = `
INSERT INTO ledger_records (kind, id, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (kind, id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := t.tx.ExecContext(ctx, q, key.Kind.String(), key.ID, value, time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("sqlite: set %s: %w", key, err)
	}
	return nil
}
