package entity

// Job is an escrow record linking a creator and a maker to a price.
// IsCompleted only ever moves from false to true.
type Job struct {
	ID          string   `json:"id"`
	Creator     Identity `json:"creator"`
	Maker       Identity `json:"maker"`
	Price       Amount   `json:"price"`
	IsCompleted bool     `json:"is_completed"`
	// IsReleased is only tracked when the ledger enforces a single release.
	IsReleased bool `json:"is_released,omitempty"`
}
