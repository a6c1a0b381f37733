package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventListingCreated EventKind = "ListingCreated"
	EventListingUpdated EventKind = "ListingUpdated"
	EventListingDeleted EventKind = "ListingDeleted"
	EventAuctionStarted EventKind = "AuctionStarted"
	EventAuctionEnded   EventKind = "AuctionEnded"
	EventBidAccepted    EventKind = "BidAccepted"
)

// Event is emitted to collaborators after a successful mutation. It is not
// part of core state; only the fields relevant to the kind are set.
type Event struct {
	EventId   string    `json:"eventId"`
	Kind      EventKind `json:"kind"`
	ListingId int64     `json:"listingId"`
	Title     string    `json:"title,omitempty"`
	Bidder    string    `json:"bidder,omitempty"` // winner for AuctionEnded
	Amount    int64     `json:"amount,omitempty"`
	Sequence  int       `json:"sequence,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewEvent(kind EventKind, listingId int64) Event {
	return Event{
		EventId:   uuid.New().String(),
		Kind:      kind,
		ListingId: listingId,
		CreatedAt: time.Now(),
	}
}
