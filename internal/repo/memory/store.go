package memory

import (
	"context"
	"house-auction-api/internal/entity"
	"house-auction-api/internal/repo/repo_errors"
	"sort"
	"sync"
	"time"
)

// Store is the authoritative in-memory implementation of the listing and
// bid repositories. Each listing carries its own mutex: operations on one
// listing serialize, operations on different listings run in parallel.
// The store-level mutex only guards the listing map and the id counter.
type Store struct {
	mu       sync.RWMutex
	listings map[int64]*listingState
	nextId   int64
}

type listingState struct {
	mu      sync.Mutex
	listing entity.Listing
	bids    []entity.Bid
}

func NewStore() *Store {
	return &Store{listings: make(map[int64]*listingState)}
}

func (s *Store) Ping() error {
	return nil
}

func (s *Store) lookup(id int64) (*listingState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ls, ok := s.listings[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return ls, nil
}

func (s *Store) CreateListing(ctx context.Context, input *entity.CreateListingInput) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ids are never reused, even after deletion.
	s.nextId++
	id := s.nextId

	s.listings[id] = &listingState{
		listing: entity.Listing{
			Id:          id,
			Title:       input.Title,
			Description: input.Description,
			ImageRef:    input.ImageRef,
			StartPrice:  input.StartPrice,
			CreatedAt:   time.Now(),
		},
	}

	return id, nil
}

func (s *Store) GetListingById(ctx context.Context, id int64) (*entity.Listing, error) {
	ls, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	listing := ls.listing

	return &listing, nil
}

func (s *Store) GetListings(ctx context.Context) ([]entity.Listing, error) {
	s.mu.RLock()
	ids := make([]int64, 0, len(s.listings))
	for id := range s.listings {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	listings := make([]entity.Listing, 0, len(ids))
	for _, id := range ids {
		ls, err := s.lookup(id)
		if err != nil {
			// Deleted between the id scan and now; ids may have gaps.
			continue
		}

		ls.mu.Lock()
		listings = append(listings, ls.listing)
		ls.mu.Unlock()
	}

	return listings, nil
}

func (s *Store) UpdateListingById(ctx context.Context, id int64, input *entity.UpdateListingInput) error {
	ls, err := s.lookup(id)
	if err != nil {
		return err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.listing.IsStarted {
		return repo_errors.ErrInvalidState
	}

	ls.listing.Title = input.Title
	ls.listing.Description = input.Description
	ls.listing.ImageRef = input.ImageRef
	ls.listing.StartPrice = input.StartPrice

	return nil
}

func (s *Store) DeleteListingById(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls, ok := s.listings[id]
	if !ok {
		return repo_errors.ErrNotFound
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.listing.IsStarted || len(ls.bids) > 0 {
		return repo_errors.ErrInvalidState
	}

	delete(s.listings, id)

	return nil
}

func (s *Store) ToggleListingActive(ctx context.Context, id int64) (*entity.Listing, error) {
	ls, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if ls.listing.IsStarted {
		return nil, repo_errors.ErrInvalidState
	}

	ls.listing.IsActive = !ls.listing.IsActive
	listing := ls.listing

	return &listing, nil
}

func (s *Store) StartAuction(ctx context.Context, id int64) error {
	ls, err := s.lookup(id)
	if err != nil {
		return err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if !ls.listing.IsActive || ls.listing.IsStarted {
		return repo_errors.ErrInvalidState
	}

	ls.listing.IsStarted = true

	return nil
}

func (s *Store) EndAuction(ctx context.Context, id int64) (*entity.Listing, error) {
	ls, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if !ls.listing.IsStarted || ls.listing.IsEnded {
		return nil, repo_errors.ErrInvalidState
	}

	ls.listing.IsEnded = true
	listing := ls.listing

	return &listing, nil
}

func (s *Store) AppendBid(ctx context.Context, input *entity.PlaceBidInput) (*entity.Bid, error) {
	ls, err := s.lookup(input.ListingId)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if !ls.listing.IsStarted || ls.listing.IsEnded {
		return nil, repo_errors.ErrInvalidState
	}

	// Strict greater-than: an equal amount never displaces the leader.
	floor := ls.listing.StartPrice
	if len(ls.bids) > 0 {
		floor = ls.listing.HighestBid
	}
	if input.Amount <= floor {
		return nil, repo_errors.ErrBidTooLow
	}

	bid := entity.Bid{
		ListingId: input.ListingId,
		Sequence:  len(ls.bids) + 1,
		Bidder:    input.Bidder,
		Amount:    input.Amount,
		CreatedAt: time.Now(),
	}

	// Ledger append and leader cache move together under one lock; readers
	// can never see one without the other.
	ls.bids = append(ls.bids, bid)
	ls.listing.HighestBid = bid.Amount
	ls.listing.HighestBidder = bid.Bidder
	ls.listing.BidCount = len(ls.bids)

	return &bid, nil
}

func (s *Store) GetBids(ctx context.Context, listingId int64) ([]entity.Bid, error) {
	ls, err := s.lookup(listingId)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	bids := make([]entity.Bid, len(ls.bids))
	copy(bids, ls.bids)

	return bids, nil
}

func (s *Store) GetBidCount(ctx context.Context, listingId int64) (int, error) {
	ls, err := s.lookup(listingId)
	if err != nil {
		return 0, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	return len(ls.bids), nil
}
