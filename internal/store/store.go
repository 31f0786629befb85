// Package store defines the key-value contract the ledger runs on.
//
// Records live in a flat namespace addressed by Key, a tagged pair of entity
// kind and id. The tag keeps entities that share an id (an NFT and its
// listing) in separate slots. There is no delete.
//
// Every call to the ledger runs inside Store.Update: the writes made through
// the Tx either all commit when fn returns nil or are all discarded.
package store

import (
	"context"
	"errors"
	"fmt"
)

var ErrClosed = errors.New("store: closed")

type Kind uint8

const (
	KindAccount Kind = iota + 1
	KindJob
	KindNFT
	KindListing
)

var kindNames = map[Kind]string{
	KindAccount: "account",
	KindJob:     "job",
	KindNFT:     "nft",
	KindListing: "listing",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("store: unknown kind %q", s)
}

type Key struct {
	Kind Kind
	ID   string
}

func AccountKey(address string) Key { return Key{Kind: KindAccount, ID: address} }
func JobKey(id string) Key          { return Key{Kind: KindJob, ID: id} }
func NFTKey(id string) Key          { return Key{Kind: KindNFT, ID: id} }
func ListingKey(nftID string) Key   { return Key{Kind: KindListing, ID: nftID} }

// String renders the key as kind:id.
func (k Key) String() string { return k.Kind.String() + ":" + k.ID }

func (k Key) Bytes() []byte { return []byte(k.String()) }

// Tx is the view of the store available inside one Update call.
type Tx interface {
	// Get reports found=false when nothing was ever written at key.
	Get(ctx context.Context, key Key) (value []byte, found bool, err error)
	Set(ctx context.Context, key Key, value []byte) error
}

type Store interface {
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}
