package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace-ledger-service/internal/events"
)

// EventRepository is the index of ledger notifications read by external
// observers.
type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS ledger_events (
	id         UUID        PRIMARY KEY,
	type       TEXT        NOT NULL,
	subject    TEXT        NOT NULL,
	emitted_at TIMESTAMPTZ NOT NULL,
	indexed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ledger_events_subject_idx ON ledger_events (type, subject);
`
	if _, err := r.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("create ledger_events: %w", err)
	}
	return nil
}

// Insert stores env once. A redelivered envelope reports inserted=false.
func (r *EventRepository) Insert(ctx context.Context, env events.Envelope) (bool, error) {
	const q = `
INSERT INTO ledger_events (id, type, subject, emitted_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING;
`
	tag, err := r.pool.Exec(ctx, q, env.ID, env.Type, env.Subject, env.EmittedAt)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
