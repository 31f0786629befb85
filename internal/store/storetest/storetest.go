// Package storetest holds the behaviour every store backend must share.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"marketplace-ledger-service/internal/store"
)

// Run exercises a backend. open must return a fresh, empty store.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("GetMissing", func(t *testing.T) {
		s := open(t)
		err := s.Update(context.Background(), func(tx store.Tx) error {
			v, ok, err := tx.Get(context.Background(), store.JobKey("nope"))
			require.NoError(t, err)
			require.False(t, ok)
			require.Nil(t, v)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("SetThenGetAcrossCalls", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			return tx.Set(ctx, store.AccountKey("GABC"), []byte(`{"role":"maker"}`))
		}))
		require.Equal(t, `{"role":"maker"}`, string(mustGet(t, s, store.AccountKey("GABC"))))
	})

	t.Run("Overwrite", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		for _, v := range []string{"one", "two"} {
			val := v
			require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
				return tx.Set(ctx, store.NFTKey("N1"), []byte(val))
			}))
		}
		require.Equal(t, "two", string(mustGet(t, s, store.NFTKey("N1"))))
	})

	t.Run("ReadOwnWrites", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Set(ctx, store.JobKey("J1"), []byte("staged")))
			v, ok, err := tx.Get(ctx, store.JobKey("J1"))
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "staged", string(v))
			return nil
		}))
	})

	t.Run("RollbackOnError", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			return tx.Set(ctx, store.ListingKey("N1"), []byte("listed"))
		}))

		boom := errors.New("boom")
		err := s.Update(ctx, func(tx store.Tx) error {
			require.NoError(t, tx.Set(ctx, store.ListingKey("N1"), []byte("sold")))
			require.NoError(t, tx.Set(ctx, store.NFTKey("N1"), []byte("owner=B")))
			return boom
		})
		require.ErrorIs(t, err, boom)

		require.Equal(t, "listed", string(mustGet(t, s, store.ListingKey("N1"))))
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			_, ok, err := tx.Get(ctx, store.NFTKey("N1"))
			require.NoError(t, err)
			require.False(t, ok)
			return nil
		}))
	})

	t.Run("KindsAreSeparate", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			if err := tx.Set(ctx, store.NFTKey("N1"), []byte("nft")); err != nil {
				return err
			}
			return tx.Set(ctx, store.ListingKey("N1"), []byte("listing"))
		}))
		require.Equal(t, "nft", string(mustGet(t, s, store.NFTKey("N1"))))
		require.Equal(t, "listing", string(mustGet(t, s, store.ListingKey("N1"))))
	})

	t.Run("ReturnedValueIsACopy", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			return tx.Set(ctx, store.JobKey("J1"), []byte("abc"))
		}))
		v := mustGet(t, s, store.JobKey("J1"))
		v[0] = 'x'
		require.Equal(t, "abc", string(mustGet(t, s, store.JobKey("J1"))))
	})
}

func mustGet(t *testing.T, s store.Store, key store.Key) []byte {
	t.Helper()
	var out []byte
	err := s.Update(context.Background(), func(tx store.Tx) error {
		v, ok, err := tx.Get(context.Background(), key)
		if err != nil {
			return err
		}
		require.Truef(t, ok, "key %s missing", key)
		out = v
		return nil
	})
	require.NoError(t, err)
	return out
}
