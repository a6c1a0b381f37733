package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"house-auction-api/internal/entity"
	"house-auction-api/internal/repo/repo_errors"
	"house-auction-api/pkg/postgres"
	"time"
)

type BidRepo struct {
	*postgres.Postgres
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{pgdb}
}

// AppendBid performs the accept/reject decision, the ledger insert and the
// leader cache update in a single transaction. The FOR UPDATE lock on the
// listing row totally orders concurrent bids on the same listing.
func (r *BidRepo) AppendBid(ctx context.Context, input *entity.PlaceBidInput) (*entity.Bid, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	lockSql, args, _ := r.SqlBuilder.
		Select("start_price, is_started, is_ended, highest_bid, bid_count").
		From("listing").
		Where("id = ?", input.ListingId).
		Suffix("FOR UPDATE").
		ToSql()

	var startPrice, highestBid int64
	var isStarted, isEnded bool
	var bidCount int
	err = tx.QueryRow(lockSql, args...).Scan(&startPrice, &isStarted, &isEnded, &highestBid, &bidCount)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	if !isStarted || isEnded {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, repo_errors.ErrInvalidState
	}

	floor := startPrice
	if bidCount > 0 {
		floor = highestBid
	}
	if input.Amount <= floor {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, repo_errors.ErrBidTooLow
	}

	bid := entity.Bid{
		ListingId: input.ListingId,
		Sequence:  bidCount + 1,
		Bidder:    input.Bidder,
		Amount:    input.Amount,
	}

	insertBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("listing_id", "sequence", "bidder", "amount").
		Values(bid.ListingId, bid.Sequence, bid.Bidder, bid.Amount).
		Suffix("RETURNING created_at").
		RunWith(tx).
		ToSql()

	var createdAt time.Time
	if err = tx.QueryRow(insertBidSql, args...).Scan(&createdAt); err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}
	bid.CreatedAt = createdAt

	updateLeaderSql, args, _ := r.SqlBuilder.
		Update("listing").
		Set("highest_bid", bid.Amount).
		Set("highest_bidder", bid.Bidder).
		Set("bid_count", bid.Sequence).
		Where("id = ?", input.ListingId).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(updateLeaderSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &bid, nil
}

func (r *BidRepo) GetBids(ctx context.Context, listingId int64) ([]entity.Bid, error) {
	existsSql, args, _ := r.SqlBuilder.
		Select("id").
		From("listing").
		Where("id = ?", listingId).
		ToSql()

	var id int64
	if err := r.Database.QueryRowContext(ctx, existsSql, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	getBidsSql, args, _ := r.SqlBuilder.
		Select("listing_id, sequence, bidder, amount, created_at").
		From("bid").
		Where("listing_id = ?", listingId).
		OrderBy("sequence ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getBidsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		var bid entity.Bid
		var createdAt time.Time
		if err := rows.Scan(&bid.ListingId, &bid.Sequence, &bid.Bidder, &bid.Amount, &createdAt); err != nil {
			return bids, err
		}
		bid.CreatedAt = createdAt
		bids = append(bids, bid)
	}
	if err = rows.Err(); err != nil {
		return bids, err
	}

	return bids, nil
}

func (r *BidRepo) GetBidCount(ctx context.Context, listingId int64) (int, error) {
	// bid_count is denormalized on the listing row, kept in step with the
	// ledger by AppendBid's transaction.
	countSql, args, _ := r.SqlBuilder.
		Select("bid_count").
		From("listing").
		Where("id = ?", listingId).
		ToSql()

	var count int
	if err := r.Database.QueryRowContext(ctx, countSql, args...).Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repo_errors.ErrNotFound
		}

		return 0, err
	}

	return count, nil
}
