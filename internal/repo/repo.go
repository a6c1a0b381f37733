package repo

import (
	"context"
	"house-auction-api/internal/entity"
	"house-auction-api/internal/repo/memory"
	"house-auction-api/internal/repo/pgdb"
	"house-auction-api/pkg/postgres"
)

type Diagnostics interface {
	Ping() error
}

// Listing owns the listing records. Mutating methods enforce lifecycle
// preconditions atomically and return repo_errors sentinels on violation,
// so concurrent callers can never observe a half-applied transition.
type Listing interface {
	CreateListing(ctx context.Context, input *entity.CreateListingInput) (int64, error)
	GetListingById(ctx context.Context, id int64) (*entity.Listing, error)
	GetListings(ctx context.Context) ([]entity.Listing, error)
	UpdateListingById(ctx context.Context, id int64, input *entity.UpdateListingInput) error
	DeleteListingById(ctx context.Context, id int64) error
	ToggleListingActive(ctx context.Context, id int64) (*entity.Listing, error)
	StartAuction(ctx context.Context, id int64) error
	EndAuction(ctx context.Context, id int64) (*entity.Listing, error)
}

// Bid owns the append-only bid ledger, keyed by listing id. AppendBid
// validates the listing state and the amount, appends the bid and updates
// the listing's cached leader fields in one critical section.
type Bid interface {
	AppendBid(ctx context.Context, input *entity.PlaceBidInput) (*entity.Bid, error)
	GetBids(ctx context.Context, listingId int64) ([]entity.Bid, error)
	GetBidCount(ctx context.Context, listingId int64) (int, error)
}

type Repositories struct {
	Diagnostics
	Listing
	Bid
}

func NewMemoryRepositories() *Repositories {
	store := memory.NewStore()

	return &Repositories{
		Diagnostics: store,
		Listing:     store,
		Bid:         store,
	}
}

func NewPostgresRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Listing:     pgdb.NewListingRepo(p),
		Bid:         pgdb.NewBidRepo(p),
	}
}
