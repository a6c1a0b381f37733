package service

import (
	"house-auction-api/internal/common"
	"house-auction-api/internal/entity"
	"iter"
	"time"
)

func mapListing(l *entity.Listing) *entity.ListingOutputModel {
	return &entity.ListingOutputModel{
		Id:            l.Id,
		Title:         l.Title,
		Description:   l.Description,
		ImageRef:      l.ImageRef,
		StartPrice:    l.StartPrice,
		Status:        common.ListingState(l.IsActive, l.IsStarted, l.IsEnded),
		IsActive:      l.IsActive,
		IsStarted:     l.IsStarted,
		IsEnded:       l.IsEnded,
		HighestBid:    l.HighestBid,
		HighestBidder: l.HighestBidder,
		BidCount:      l.BidCount,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
	}
}

func mapListings(listings []entity.Listing) iter.Seq[entity.ListingOutputModel] {
	return func(yield func(entity.ListingOutputModel) bool) {
		for i := range listings {
			if !yield(*mapListing(&listings[i])) {
				return
			}
		}
	}
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		ListingId: b.ListingId,
		Sequence:  b.Sequence,
		Bidder:    b.Bidder,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func mapBids(bids []entity.Bid) iter.Seq[entity.BidOutputModel] {
	return func(yield func(entity.BidOutputModel) bool) {
		for i := range bids {
			if !yield(*mapBid(&bids[i])) {
				return
			}
		}
	}
}
