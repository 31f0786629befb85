package redis_test

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"marketplace-ledger-service/internal/entity"
	"marketplace-ledger-service/internal/ledger"
	"marketplace-ledger-service/internal/store"
	"marketplace-ledger-service/internal/store/redis"
	"marketplace-ledger-service/internal/store/storetest"
)

// newClient talks to REDIS_ADDR when set, otherwise to an in-process
// miniredis.
func newClient(t *testing.T) *goredis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = miniredis.RunT(t).Addr()
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())
	return rdb
}

func testPrefix() string {
	return "ledgertest:" + uuid.NewString() + ":"
}

func TestRedisStore(t *testing.T) {
	rdb := newClient(t)

	storetest.Run(t, func(t *testing.T) store.Store {
		// a fresh prefix per subtest keeps runs isolated without FLUSHDB
		return redis.New(rdb, testPrefix())
	})
}

func TestRedisStore_SecondReplicaSaleWins(t *testing.T) {
	ctx := context.Background()
	rdb := newClient(t)
	prefix := testPrefix()
	replicaA := redis.New(rdb, prefix)
	replicaB := redis.New(rdb, prefix)
	l := ledger.New(ledger.DefaultPolicy())

	require.NoError(t, replicaA.Update(ctx, func(tx store.Tx) error {
		if _, err := l.MintNFT(ctx, tx, "N1", "GA", "meta"); err != nil {
			return err
		}
		_, err := l.ListNFT(ctx, tx, "GA", "N1", entity.NewAmount(5))
		return err
	}))

	attempts := 0
	err := replicaA.Update(ctx, func(tx store.Tx) error {
		attempts++
		if _, err := l.BuyNFT(ctx, tx, "N1", "GC"); err != nil {
			return err
		}
		if attempts == 1 {
			// B sells between A's reads and A's commit
			require.NoError(t, replicaB.Update(ctx, func(tx store.Tx) error {
				_, err := l.BuyNFT(ctx, tx, "N1", "GB")
				return err
			}))
		}
		return nil
	})
	require.ErrorIs(t, err, ledger.ErrListingNotListed)
	require.Equal(t, 2, attempts)

	var nft *entity.NFT
	require.NoError(t, replicaB.Update(ctx, func(tx store.Tx) error {
		var err error
		nft, err = l.GetNFT(ctx, tx, "N1")
		return err
	}))
	require.Equal(t, entity.Identity("GB"), nft.Owner)
}

func TestRedisStore_GivesUpAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	rdb := newClient(t)
	prefix := testPrefix()
	replicaA := redis.New(rdb, prefix)
	replicaB := redis.New(rdb, prefix)
	key := store.JobKey("J1")

	attempts := 0
	err := replicaA.Update(ctx, func(tx store.Tx) error {
		attempts++
		if _, _, err := tx.Get(ctx, key); err != nil {
			return err
		}
		require.NoError(t, replicaB.Update(ctx, func(tx store.Tx) error {
			return tx.Set(ctx, key, []byte(strconv.Itoa(attempts)))
		}))
		return tx.Set(ctx, key, []byte("a"))
	})
	require.ErrorIs(t, err, redis.ErrConflict)
	require.Equal(t, redis.MaxAttempts, attempts)

	require.NoError(t, replicaB.Update(ctx, func(tx store.Tx) error {
		v, ok, err := tx.Get(ctx, key)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, strconv.Itoa(redis.MaxAttempts), string(v))
		return nil
	}))
}
