package ledger

import (
	"context"

	"marketplace-ledger-service/internal/entity"
	"marketplace-ledger-service/internal/store"
)

func (l *Ledger) MintNFT(ctx context.Context, tx store.Tx, id string, owner entity.Identity, metadata string) (*entity.NFT, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	owner, err := parseIdentity(owner)
	if err != nil {
		return nil, err
	}

	key := store.NFTKey(id)
	if err := checkOverwrite(ctx, tx, key, l.policy.NFTs); err != nil {
		return nil, err
	}
	nft := &entity.NFT{ID: id, Owner: owner, Metadata: metadata}
	if err := save(ctx, tx, key, nft); err != nil {
		return nil, err
	}
	return nft, nil
}

func (l *Ledger) GetNFT(ctx context.Context, tx store.Tx, id string) (*entity.NFT, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	return load[entity.NFT](ctx, tx, store.NFTKey(id))
}
