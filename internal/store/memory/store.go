// Package memory is an in-process store backend for tests and single-node runs.
package memory

import (
	"context"
	"sync"

	"marketplace-ledger-service/internal/store"
)

type Store struct {
	mu     sync.Mutex
	data   map[store.Key][]byte
	closed bool
}

func New() *Store {
	return &Store{data: make(map[store.Key][]byte)}
}

func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return store.ErrClosed
	}

	staged := store.NewStaged(func(_ context.Context, key store.Key) ([]byte, bool, error) {
		v, ok := s.data[key]
		if !ok {
			return nil, false, nil
		}
		out := make([]byte, len(v))
		copy(out, v)
		return out, true, nil
	})
	if err := fn(staged); err != nil {
		return err
	}
	for _, w := range staged.Writes() {
		s.data[w.Key] = w.Value
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
