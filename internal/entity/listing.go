package entity

type ListingStatus string

const (
	ListingListed ListingStatus = "listed"
	ListingSold   ListingStatus = "sold"
)

// Listing is an offer to sell the NFT with the same id. Status only moves
// from listed to sold.
type Listing struct {
	NFTID  string        `json:"nft_id"`
	Price  Amount        `json:"price"`
	Status ListingStatus `json:"status"`
}
