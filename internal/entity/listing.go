package entity

import (
	"time"
)

// db model
type Listing struct {
	Id            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	ImageRef      string    `json:"imageRef" db:"image_ref"`
	StartPrice    int64     `json:"startPrice" db:"start_price"`
	IsActive      bool      `json:"isActive" db:"is_active"`
	IsStarted     bool      `json:"isStarted" db:"is_started"`
	IsEnded       bool      `json:"isEnded" db:"is_ended"`
	HighestBid    int64     `json:"highestBid" db:"highest_bid"`
	HighestBidder string    `json:"highestBidder" db:"highest_bidder"`
	BidCount      int       `json:"bidCount" db:"bid_count"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// service + repo input model
type CreateListingInput struct {
	Title       string // given
	Description string // given
	ImageRef    string // given, opaque (inline data URI or content hash), may be empty
	StartPrice  int64  // given, smallest currency unit
	Caller      string // given
	// Id assigned sequentially by the store, starting at 1
	// IsActive / IsStarted / IsEnded start false
	// CreatedAt sets automatically
}

type UpdateListingInput struct {
	Title       string
	Description string
	ImageRef    string
	StartPrice  int64
	Caller      string
}

// controller model
type ListingOutputModel struct {
	Id            int64  `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	ImageRef      string `json:"imageRef"`
	StartPrice    int64  `json:"startPrice"`
	Status        string `json:"status"`
	IsActive      bool   `json:"isActive"`
	IsStarted     bool   `json:"isStarted"`
	IsEnded       bool   `json:"isEnded"`
	HighestBid    int64  `json:"highestBid"`
	HighestBidder string `json:"highestBidder"`
	BidCount      int    `json:"bidCount"`
	CreatedAt     string `json:"createdAt"`
}
