package service

import (
	"context"
	"errors"
	"house-auction-api/internal/entity"
	"house-auction-api/internal/event"
	"house-auction-api/internal/repo"
	"house-auction-api/internal/repo/repo_errors"
	"iter"
)

type BidService struct {
	listingRepo repo.Listing
	bidRepo     repo.Bid
	bus         *event.Bus
}

func NewBidService(repos *repo.Repositories, bus *event.Bus) *BidService {
	return &BidService{
		listingRepo: repos.Listing,
		bidRepo:     repos.Bid,
		bus:         bus,
	}
}

// PlaceBid appends to the ledger when the amount strictly exceeds the
// current leader (or the start price before the first bid). Anyone may
// bid, admins included; there is no minimum-increment rule.
func (s *BidService) PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (*entity.BidOutputModel, error) {
	if input.Bidder == "" {
		return nil, ErrInvalidInput
	}

	bid, err := s.bidRepo.AppendBid(ctx, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		if errors.Is(err, repo_errors.ErrInvalidState) {
			return nil, ErrInvalidState
		}
		if errors.Is(err, repo_errors.ErrBidTooLow) {
			return nil, ErrBidTooLow
		}

		return nil, err
	}

	e := entity.NewEvent(entity.EventBidAccepted, bid.ListingId)
	e.Bidder = bid.Bidder
	e.Amount = bid.Amount
	e.Sequence = bid.Sequence
	s.bus.Publish(e)

	return mapBid(bid), nil
}

func (s *BidService) GetBidsForListing(ctx context.Context, listingId int64) (iter.Seq[entity.BidOutputModel], error) {
	bids, err := s.bidRepo.GetBids(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}

		return nil, err
	}

	return mapBids(bids), nil
}

func (s *BidService) GetBidCount(ctx context.Context, listingId int64) (int, error) {
	count, err := s.bidRepo.GetBidCount(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return 0, ErrListingNotFound
		}

		return 0, err
	}

	return count, nil
}

// GetCurrentLeader returns nil before the first accepted bid.
func (s *BidService) GetCurrentLeader(ctx context.Context, listingId int64) (*entity.Leader, error) {
	listing, err := s.listingRepo.GetListingById(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}

		return nil, err
	}

	if listing.BidCount == 0 {
		return nil, nil
	}

	return &entity.Leader{Bidder: listing.HighestBidder, Amount: listing.HighestBid}, nil
}
