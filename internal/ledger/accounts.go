package ledger

import (
	"context"
	"fmt"

	"marketplace-ledger-service/internal/entity"
	"marketplace-ledger-service/internal/store"
)

// CreateAccount stores a role-tagged account at address.
func (l *Ledger) CreateAccount(ctx context.Context, tx store.Tx, caller entity.Identity, role entity.Role, address entity.Identity) (*entity.Account, error) {
	address, err := parseIdentity(address)
	if err != nil {
		return nil, err
	}
	if !role.Valid() {
		return nil, invalidArgument(fmt.Errorf("unknown role %q", role))
	}
	if l.policy.SelfSignedAccounts {
		caller, err = parseIdentity(caller)
		if err != nil {
			return nil, err
		}
		if caller != address {
			return nil, fmt.Errorf("%w: %s cannot create account %s", ErrUnauthorized, caller, address)
		}
	}

	key := store.AccountKey(string(address))
	if err := checkOverwrite(ctx, tx, key, l.policy.Accounts); err != nil {
		return nil, err
	}
	acc := &entity.Account{Role: role, Address: address}
	if err := save(ctx, tx, key, acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (l *Ledger) GetAccount(ctx context.Context, tx store.Tx, address entity.Identity) (*entity.Account, error) {
	address, err := parseIdentity(address)
	if err != nil {
		return nil, err
	}
	return load[entity.Account](ctx, tx, store.AccountKey(string(address)))
}
