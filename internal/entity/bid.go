package entity

import (
	"time"
)

// Bids are immutable once recorded; (ListingId, Sequence) identifies a bid.
type Bid struct {
	ListingId int64     `json:"listingId" db:"listing_id"`
	Sequence  int       `json:"sequence" db:"sequence"`
	Bidder    string    `json:"bidder" db:"bidder"`
	Amount    int64     `json:"amount" db:"amount"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// service + repo input model
type PlaceBidInput struct {
	ListingId int64  // given
	Bidder    string // given
	Amount    int64  // given, smallest currency unit
	// Sequence assigned per listing by the store, starting at 1
	// CreatedAt sets automatically
}

// controller model
type BidOutputModel struct {
	ListingId int64  `json:"listingId"`
	Sequence  int    `json:"sequence"`
	Bidder    string `json:"bidder"`
	Amount    int64  `json:"amount"`
	CreatedAt string `json:"createdAt"`
}

// Leader is the bidder currently holding the highest accepted bid.
type Leader struct {
	Bidder string `json:"bidder"`
	Amount int64  `json:"amount"`
}
