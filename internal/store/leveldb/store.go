// Package leveldb persists ledger records in a local LevelDB directory.
package leveldb

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"marketplace-ledger-service/internal/store"
)

type Store struct {
	mu   sync.Mutex
	db   *leveldb.DB
	sync bool
}

// Open creates or opens a LevelDB database at path. With syncWrites set
// every commit is fsynced before Update returns.
func Open(path string, syncWrites bool) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("leveldb: open %s: %w", path, err)
	}
	return &Store{db: db, sync: syncWrites}, nil
}

func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := store.NewStaged(func(_ context.Context, key store.Key) ([]byte, bool, error) {
		v, err := s.db.Get(key.Bytes(), nil)
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, fmt.Errorf("leveldb: get %s: %w", key, err)
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
	batch := new(leveldb.Batch)
	for _, w := range writes {
		batch.Put(w.Key.Bytes(), w.Value)
	}
	if err := s.db.Write(batch, &opt.WriteOptions{Sync: s.sync}); err != nil {
		return fmt.Errorf("leveldb: commit: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
