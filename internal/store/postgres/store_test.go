package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"marketplace-ledger-service/internal/store"
	"marketplace-ledger-service/internal/store/postgres"
	"marketplace-ledger-service/internal/store/storetest"
)

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	storetest.Run(t, func(t *testing.T) store.Store {
		s := postgres.New(pool)
		require.NoError(t, s.EnsureSchema(ctx))
		_, err := pool.Exec(ctx, `TRUNCATE ledger_records;`)
		require.NoError(t, err)
		return s
	})
}
