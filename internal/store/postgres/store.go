// Package postgres keeps ledger records in a Postgres table. Each Update runs
// in one serializable transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-ledger-service/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_records (
	kind       TEXT        NOT NULL,
	id         TEXT        NOT NULL,
	value      BYTEA       NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (kind, id)
);`

type Store struct {
	pool *pgxpool.Pool
}

// New wraps a pool owned by the caller; Close does not close it.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: create schema: %w", err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(tx pgx.Tx) error {
		return fn(&pgTx{tx: tx})
	})
}

func (s *Store) Close() error { return nil }

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) Get(ctx context.Context, key store.Key) ([]byte, bool, error) {
	const q = `SELECT value FROM ledger_records WHERE kind = $1 AND id = $2;`
	var value []byte
	if err := t.tx.QueryRow(ctx, q, key.Kind.String(), key.ID).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("postgres: get %s: %w", key, err)
	}
	return value, true, nil
}

func (t *pgTx) Set(ctx context.Context, key store.Key, value []byte) error {
	const q = `
INSERT INTO ledger_records (kind, id, value)
VALUES ($1, $2, $3)
ON CONFLICT (kind, id) DO UPDATE SET value = EXCLUDED.value, updated_at = now();
`
	if _, err := t.tx.Exec(ctx, q, key.Kind.String(), key.ID, value); err != nil {
		return fmt.Errorf("postgres: set %s: %w", key, err)
	}
	return nil
}
