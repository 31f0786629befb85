// Package ledger is the marketplace state machine: accounts, escrow jobs,
// NFTs and NFT listings kept in a key-value store.
//
// Every operation takes the store transaction it runs in. An operation reads
// what it needs, validates every precondition and only then writes, so a
// failed call never leaves a partial mutation behind. Operations that fire a
// notification return it; the caller emits it once the transaction commits.
// The ledger holds no locks; callers serialize operations.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"marketplace-ledger-service/internal/entity"
	"marketplace-ledger-service/internal/store"
)

type Ledger struct {
	policy Policy
}

func New(policy Policy) *Ledger {
	return &Ledger{policy: policy}
}

func load[T any](ctx context.Context, tx store.Tx, key store.Key) (*T, error) {
	raw, ok, err := tx.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("ledger: decode %s: %w", key, err)
	}
	return &v, nil
}

func save(ctx context.Context, tx store.Tx, key store.Key, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ledger: encode %s: %w", key, err)
	}
	return tx.Set(ctx, key, raw)
}

func checkOverwrite(ctx context.Context, tx store.Tx, key store.Key, p OverwritePolicy) error {
	if p == OverwriteAllow {
		return nil
	}
	_, exists, err := tx.Get(ctx, key)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, key)
	}
	return nil
}

func parseID(id string) error {
	if err := entity.ValidateIdentifier(id); err != nil {
		return invalidArgument(err)
	}
	return nil
}

func parseIdentity(id entity.Identity) (entity.Identity, error) {
	out, err := entity.ParseIdentity(string(id))
	if err != nil {
		return "", invalidArgument(err)
	}
	return out, nil
}
