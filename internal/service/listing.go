package service

import (
	"context"
	"errors"
	"house-auction-api/internal/entity"
	"house-auction-api/internal/event"
	"house-auction-api/internal/repo"
	"house-auction-api/internal/repo/repo_errors"
	"house-auction-api/internal/settlement"
	"iter"
)

type ListingService struct {
	listingRepo repo.Listing
	admins      adminSet
	bus         *event.Bus
	notifier    settlement.Notifier
}

func NewListingService(repos *repo.Repositories, admins adminSet, bus *event.Bus, notifier settlement.Notifier) *ListingService {
	return &ListingService{
		listingRepo: repos.Listing,
		admins:      admins,
		bus:         bus,
		notifier:    notifier,
	}
}

func (s *ListingService) CreateListing(ctx context.Context, input *entity.CreateListingInput) (*entity.ListingOutputModel, error) {
	if !s.admins.contains(input.Caller) {
		return nil, ErrUnauthorized
	}

	if input.Title == "" || input.Description == "" || input.StartPrice < 0 {
		return nil, ErrInvalidInput
	}

	id, err := s.listingRepo.CreateListing(ctx, input)
	if err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.GetListingById(ctx, id)
	if err != nil {
		return nil, err
	}

	e := entity.NewEvent(entity.EventListingCreated, id)
	e.Title = listing.Title
	s.bus.Publish(e)

	return mapListing(listing), nil
}

// Listings are immutable once bidding can occur, so editing a started
// listing is rejected even by an admin.
func (s *ListingService) UpdateListingById(ctx context.Context, listingId int64, input *entity.UpdateListingInput) (*entity.ListingOutputModel, error) {
	if !s.admins.contains(input.Caller) {
		return nil, ErrUnauthorized
	}

	if input.Title == "" || input.Description == "" || input.StartPrice < 0 {
		return nil, ErrInvalidInput
	}

	err := s.listingRepo.UpdateListingById(ctx, listingId, input)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		if errors.Is(err, repo_errors.ErrInvalidState) {
			return nil, ErrInvalidState
		}

		return nil, err
	}

	listing, err := s.listingRepo.GetListingById(ctx, listingId)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(entity.NewEvent(entity.EventListingUpdated, listingId))

	return mapListing(listing), nil
}

func (s *ListingService) DeleteListingById(ctx context.Context, listingId int64, caller string) error {
	if !s.admins.contains(caller) {
		return ErrUnauthorized
	}

	err := s.listingRepo.DeleteListingById(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return ErrListingNotFound
		}
		if errors.Is(err, repo_errors.ErrInvalidState) {
			return ErrInvalidState
		}

		return err
	}

	s.bus.Publish(entity.NewEvent(entity.EventListingDeleted, listingId))

	return nil
}

func (s *ListingService) ToggleListingActive(ctx context.Context, listingId int64, caller string) (*entity.ListingOutputModel, error) {
	if !s.admins.contains(caller) {
		return nil, ErrUnauthorized
	}

	listing, err := s.listingRepo.ToggleListingActive(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		if errors.Is(err, repo_errors.ErrInvalidState) {
			return nil, ErrInvalidState
		}

		return nil, err
	}

	return mapListing(listing), nil
}

func (s *ListingService) StartAuction(ctx context.Context, listingId int64, caller string) (*entity.ListingOutputModel, error) {
	if !s.admins.contains(caller) {
		return nil, ErrUnauthorized
	}

	err := s.listingRepo.StartAuction(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		if errors.Is(err, repo_errors.ErrInvalidState) {
			return nil, ErrInvalidState
		}

		return nil, err
	}

	listing, err := s.listingRepo.GetListingById(ctx, listingId)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(entity.NewEvent(entity.EventAuctionStarted, listingId))

	return mapListing(listing), nil
}

// EndAuction is the terminal transition. The winner, if any, is reported to
// the settlement collaborator; fund transfer is that collaborator's concern.
func (s *ListingService) EndAuction(ctx context.Context, listingId int64, caller string) (*entity.ListingOutputModel, error) {
	if !s.admins.contains(caller) {
		return nil, ErrUnauthorized
	}

	listing, err := s.listingRepo.EndAuction(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		if errors.Is(err, repo_errors.ErrInvalidState) {
			return nil, ErrInvalidState
		}

		return nil, err
	}

	if listing.BidCount > 0 {
		s.notifier.NotifyAuctionWon(listing.Id, listing.HighestBidder, listing.HighestBid)
	}

	e := entity.NewEvent(entity.EventAuctionEnded, listingId)
	e.Bidder = listing.HighestBidder
	e.Amount = listing.HighestBid
	s.bus.Publish(e)

	return mapListing(listing), nil
}

func (s *ListingService) GetListingById(ctx context.Context, listingId int64) (*entity.ListingOutputModel, error) {
	listing, err := s.listingRepo.GetListingById(ctx, listingId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrListingNotFound
		}

		return nil, err
	}

	return mapListing(listing), nil
}

func (s *ListingService) GetListings(ctx context.Context) (iter.Seq[entity.ListingOutputModel], error) {
	listings, err := s.listingRepo.GetListings(ctx)
	if err != nil {
		return nil, err
	}

	return mapListings(listings), nil
}
