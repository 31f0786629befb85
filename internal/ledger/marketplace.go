package ledger

import (
	"context"
	"fmt"

	"marketplace-ledger-service/internal/entity"
	"marketplace-ledger-service/internal/events"
	"marketplace-ledger-service/internal/store"
)

// ListNFT offers an NFT for sale. Only the current owner may list it. A
// listing that is still open is re-priced; a sold one stays sold.
func (l *Ledger) ListNFT(ctx context.Context, tx store.Tx, caller entity.Identity, nftID string, price entity.Amount) (*entity.Listing, error) {
	if err := parseID(nftID); err != nil {
		return nil, err
	}
	caller, err := parseIdentity(caller)
	if err != nil {
		return nil, err
	}

	nft, err := load[entity.NFT](ctx, tx, store.NFTKey(nftID))
	if err != nil {
		return nil, err
	}
	if nft.Owner != caller {
		return nil, fmt.Errorf("%w: %s does not own nft %s", ErrUnauthorized, caller, nftID)
	}

	key := store.ListingKey(nftID)
	existing, err := load[entity.Listing](ctx, tx, key)
	switch {
	case err == nil:
		if existing.Status == entity.ListingSold {
			return nil, fmt.Errorf("%w: %s", ErrListingSold, key)
		}
	case !isNotFound(err):
		return nil, err
	}

	listing := &entity.Listing{NFTID: nftID, Price: price, Status: entity.ListingListed}
	if err := save(ctx, tx, key, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// BuyNFT closes an open listing and hands the NFT to buyer. The recorded
// price is informational; no payment is taken.
func (l *Ledger) BuyNFT(ctx context.Context, tx store.Tx, nftID string, buyer entity.Identity) (events.Event, error) {
	if err := parseID(nftID); err != nil {
		return nil, err
	}
	buyer, err := parseIdentity(buyer)
	if err != nil {
		return nil, err
	}

	listingKey := store.ListingKey(nftID)
	listing, err := load[entity.Listing](ctx, tx, listingKey)
	if err != nil {
		return nil, err
	}
	if listing.Status != entity.ListingListed {
		return nil, fmt.Errorf("%w: %s", ErrListingNotListed, listingKey)
	}
	nftKey := store.NFTKey(nftID)
	nft, err := load[entity.NFT](ctx, tx, nftKey)
	if err != nil {
		return nil, err
	}

	listing.Status = entity.ListingSold
	nft.Owner = buyer
	if err := save(ctx, tx, listingKey, listing); err != nil {
		return nil, err
	}
	if err := save(ctx, tx, nftKey, nft); err != nil {
		return nil, err
	}
	return events.NFTSold{NFTID: nftID}, nil
}

func (l *Ledger) GetListing(ctx context.Context, tx store.Tx, nftID string) (*entity.Listing, error) {
	if err := parseID(nftID); err != nil {
		return nil, err
	}
	return load[entity.Listing](ctx, tx, store.ListingKey(nftID))
}
