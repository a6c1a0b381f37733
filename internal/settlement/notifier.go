package settlement

import (
	"log"
)

// Notifier is told about a won auction exactly once, when the auction
// ends with at least one accepted bid. The call is a fire-and-forget
// notification, not a guarantee of fund movement; implementations must
// not block the caller.
type Notifier interface {
	NotifyAuctionWon(listingId int64, winner string, amount int64)
}

// LogNotifier records the settlement hand-off in the process log.
type LogNotifier struct{}

func (LogNotifier) NotifyAuctionWon(listingId int64, winner string, amount int64) {
	log.Printf("settlement: listing %d won by %s for %d", listingId, winner, amount)
}
