// Package redis keeps ledger records as plain Redis strings.
//
// Keys are laid out as {prefix}{kind}:{id}, e.g. ledger:nft:N1.
//
// Every key a call reads is WATCHed and the call's writes go out in one
// MULTI/EXEC, so a call whose reads were changed by another process in the
// meantime is rerun against fresh state. WATCH needs all keys on one node:
// use a single-node or failover client, not a cluster client.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"marketplace-ledger-service/internal/store"
)

const (
	DefaultPrefix = "ledger:"

	// MaxAttempts bounds how often a contended call is rerun.
	MaxAttempts = 8
)

// ErrConflict is returned when a call kept losing to concurrent writers.
var ErrConflict = errors.New("redis: transaction conflict")

// Store serializes Update calls within the process; writers in other
// processes are detected with WATCH.
type Store struct {
	mu     sync.Mutex
	rdb    redis.UniversalClient
	prefix string
}

// New wraps a client owned by the caller; Close does not close it.
func New(rdb redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{rdb: rdb, prefix: prefix}
}

func (s *Store) key(k store.Key) string { return s.prefix + k.String() }

// Update runs fn until its commit goes through unopposed, at most
// MaxAttempts times. fn must be safe to rerun.
func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < MaxAttempts; attempt++ {
		err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
			return s.attempt(ctx, tx, fn)
		})
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("%w after %d attempts", ErrConflict, MaxAttempts)
}

func (s *Store) attempt(ctx context.Context, tx *redis.Tx, fn func(tx store.Tx) error) error {
	staged := store.NewStaged(func(ctx context.Context, key store.Key) ([]byte, bool, error) {
		k := s.key(key)
		if err := tx.Watch(ctx, k).Err(); err != nil {
			return nil, false, fmt.Errorf("redis: watch %s: %w", key, err)
		}
		v, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("redis: get %s: %w", key, err)
		}
		return v, true, nil
	})
	if err := fn(staged); err != nil {
		return err
	}

	writes := staged.Writes()
	if len(writes) == 0 {
		return nil
	}
	_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, w := range writes {
			pipe.Set(ctx, s.key(w.Key), w.Value, 0)
		}
		return nil
	})
	if errors.Is(err, redis.TxFailedErr) {
		return err
	}
	if err != nil {
		return fmt.Errorf("redis: commit: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
