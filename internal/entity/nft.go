package entity

type NFT struct {
	ID       string   `json:"id"`
	Owner    Identity `json:"owner"`
	Metadata string   `json:"metadata"`
}
