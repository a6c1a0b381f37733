package service

import (
	"context"
	"house-auction-api/internal/entity"
	"house-auction-api/internal/event"
	"house-auction-api/internal/repo"
	"house-auction-api/internal/settlement"
	"iter"
)

type Diagnostics interface {
	Ping() error
}

// Listing is the registry of auctionable houses: admin-gated mutations,
// lifecycle transitions and read access.
type Listing interface {
	CreateListing(ctx context.Context, input *entity.CreateListingInput) (*entity.ListingOutputModel, error)
	UpdateListingById(ctx context.Context, listingId int64, input *entity.UpdateListingInput) (*entity.ListingOutputModel, error)
	DeleteListingById(ctx context.Context, listingId int64, caller string) error

	ToggleListingActive(ctx context.Context, listingId int64, caller string) (*entity.ListingOutputModel, error)
	StartAuction(ctx context.Context, listingId int64, caller string) (*entity.ListingOutputModel, error)
	EndAuction(ctx context.Context, listingId int64, caller string) (*entity.ListingOutputModel, error)

	GetListingById(ctx context.Context, listingId int64) (*entity.ListingOutputModel, error)
	GetListings(ctx context.Context) (iter.Seq[entity.ListingOutputModel], error)
}

// Bid is the per-listing ledger of accepted bids and its derived leader.
type Bid interface {
	PlaceBid(ctx context.Context, input *entity.PlaceBidInput) (*entity.BidOutputModel, error)

	GetBidsForListing(ctx context.Context, listingId int64) (iter.Seq[entity.BidOutputModel], error)
	GetBidCount(ctx context.Context, listingId int64) (int, error)
	GetCurrentLeader(ctx context.Context, listingId int64) (*entity.Leader, error)
}

type Services struct {
	Diagnostics Diagnostics
	Listing     Listing
	Bid         Bid
}

type Deps struct {
	Repos    *repo.Repositories
	Admins   []string
	Bus      *event.Bus
	Notifier settlement.Notifier
}

func NewServices(deps Deps) *Services {
	admins := newAdminSet(deps.Admins)

	return &Services{
		Diagnostics: NewDiagnosticsService(deps.Repos),
		Listing:     NewListingService(deps.Repos, admins, deps.Bus, deps.Notifier),
		Bid:         NewBidService(deps.Repos, deps.Bus),
	}
}

type adminSet map[string]struct{}

func newAdminSet(admins []string) adminSet {
	s := make(adminSet, len(admins))
	for _, admin := range admins {
		s[admin] = struct{}{}
	}

	return s
}

func (s adminSet) contains(identity string) bool {
	_, ok := s[identity]

	return ok
}
