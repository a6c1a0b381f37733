package memory

import (
	"context"
	"house-auction-api/internal/entity"
	"house-auction-api/internal/repo/repo_errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createListing(t *testing.T, store *Store, startPrice int64) int64 {
	t.Helper()

	id, err := store.CreateListing(context.Background(), &entity.CreateListingInput{
		Title:       "House",
		Description: "Description",
		StartPrice:  startPrice,
	})
	require.NoError(t, err)

	return id
}

func startAuction(t *testing.T, store *Store, id int64) {
	t.Helper()

	_, err := store.ToggleListingActive(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, store.StartAuction(context.Background(), id))
}

func TestStore_IdsNeverReused(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := createListing(t, store, 0)
	require.NoError(t, store.DeleteListingById(ctx, first))
	second := createListing(t, store, 0)

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	_, err := store.GetListingById(ctx, first)
	assert.ErrorIs(t, err, repo_errors.ErrNotFound)
}

func TestStore_DeleteGuards(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	withBid := createListing(t, store, 0)
	startAuction(t, store, withBid)
	_, err := store.AppendBid(ctx, &entity.PlaceBidInput{ListingId: withBid, Bidder: "alice", Amount: 10})
	require.NoError(t, err)

	assert.ErrorIs(t, store.DeleteListingById(ctx, withBid), repo_errors.ErrInvalidState)
	assert.ErrorIs(t, store.DeleteListingById(ctx, 42), repo_errors.ErrNotFound)
}

func TestStore_GetListingsSkipsDeletedIds(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	createListing(t, store, 0)
	second := createListing(t, store, 0)
	createListing(t, store, 0)
	require.NoError(t, store.DeleteListingById(ctx, second))

	listings, err := store.GetListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, int64(1), listings[0].Id)
	assert.Equal(t, int64(3), listings[1].Id)
}

func TestStore_AppendBidUpdatesLeaderAtomically(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id := createListing(t, store, 100)
	startAuction(t, store, id)

	_, err := store.AppendBid(ctx, &entity.PlaceBidInput{ListingId: id, Bidder: "alice", Amount: 100})
	assert.ErrorIs(t, err, repo_errors.ErrBidTooLow)

	bid, err := store.AppendBid(ctx, &entity.PlaceBidInput{ListingId: id, Bidder: "alice", Amount: 101})
	require.NoError(t, err)
	assert.Equal(t, 1, bid.Sequence)

	listing, err := store.GetListingById(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(101), listing.HighestBid)
	assert.Equal(t, "alice", listing.HighestBidder)
	assert.Equal(t, 1, listing.BidCount)
}

// The cached leader and the ledger move together: a reader must never see
// a leader without its bid, or a bid without the leader reflecting it.
func TestStore_SnapshotConsistencyUnderWrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id := createListing(t, store, 0)
	startAuction(t, store, id)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for amount := int64(1); amount <= 200; amount++ {
			_, err := store.AppendBid(ctx, &entity.PlaceBidInput{ListingId: id, Bidder: "alice", Amount: amount})
			assert.NoError(t, err)
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}

		listing, err := store.GetListingById(ctx, id)
		require.NoError(t, err)
		bids, err := store.GetBids(ctx, id)
		require.NoError(t, err)

		// The bids snapshot is taken after the listing snapshot, so it can
		// only be equal or ahead.
		assert.GreaterOrEqual(t, len(bids), listing.BidCount)
		if len(bids) > 0 {
			last := bids[len(bids)-1]
			// The listing snapshot may be older than the bids snapshot,
			// never ahead of what its own read observed.
			assert.LessOrEqual(t, listing.HighestBid, last.Amount)
		} else {
			assert.Equal(t, int64(0), listing.HighestBid)
		}
	}
}

func TestStore_ListingsIsolatedFromEachOther(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	first := createListing(t, store, 0)
	second := createListing(t, store, 0)
	startAuction(t, store, first)
	startAuction(t, store, second)

	var wg sync.WaitGroup
	for _, id := range []int64{first, second} {
		wg.Add(1)
		go func(listingId int64) {
			defer wg.Done()
			for amount := int64(1); amount <= 100; amount++ {
				_, err := store.AppendBid(ctx, &entity.PlaceBidInput{ListingId: listingId, Bidder: "b", Amount: amount})
				assert.NoError(t, err)
			}
		}(id)
	}
	wg.Wait()

	for _, id := range []int64{first, second} {
		count, err := store.GetBidCount(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 100, count)
	}
}

func TestStore_LifecycleTransitions(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	id := createListing(t, store, 0)

	assert.ErrorIs(t, store.StartAuction(ctx, id), repo_errors.ErrInvalidState)
	_, err := store.EndAuction(ctx, id)
	assert.ErrorIs(t, err, repo_errors.ErrInvalidState)

	startAuction(t, store, id)

	_, err = store.ToggleListingActive(ctx, id)
	assert.ErrorIs(t, err, repo_errors.ErrInvalidState)
	assert.ErrorIs(t, store.StartAuction(ctx, id), repo_errors.ErrInvalidState)

	listing, err := store.EndAuction(ctx, id)
	require.NoError(t, err)
	assert.True(t, listing.IsEnded)

	_, err = store.EndAuction(ctx, id)
	assert.ErrorIs(t, err, repo_errors.ErrInvalidState)
}
