package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"house-auction-api/internal/entity"
	"house-auction-api/internal/repo/repo_errors"
	"house-auction-api/pkg/postgres"
	"time"

	"github.com/Masterminds/squirrel"
)

type ListingRepo struct {
	*postgres.Postgres
}

func NewListingRepo(pgdb *postgres.Postgres) *ListingRepo {
	return &ListingRepo{pgdb}
}

const listingColumns = "id, title, description, image_ref, start_price, is_active, is_started, is_ended, highest_bid, highest_bidder, bid_count, created_at"

func scanListing(row interface{ Scan(...any) error }) (*entity.Listing, error) {
	var listing entity.Listing
	var createdAt time.Time
	err := row.Scan(&listing.Id, &listing.Title, &listing.Description, &listing.ImageRef,
		&listing.StartPrice, &listing.IsActive, &listing.IsStarted, &listing.IsEnded,
		&listing.HighestBid, &listing.HighestBidder, &listing.BidCount, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}

	listing.CreatedAt = createdAt

	return &listing, nil
}

func (r *ListingRepo) CreateListing(ctx context.Context, input *entity.CreateListingInput) (int64, error) {
	createListingSql, args, _ := r.SqlBuilder.
		Insert("listing").
		Columns("title", "description", "image_ref", "start_price").
		Values(input.Title, input.Description, input.ImageRef, input.StartPrice).
		Suffix("RETURNING id").
		ToSql()

	var listingId int64
	err := r.Database.QueryRowContext(ctx, createListingSql, args...).Scan(&listingId)
	if err != nil {
		return 0, err
	}

	return listingId, nil
}

func (r *ListingRepo) GetListingById(ctx context.Context, id int64) (*entity.Listing, error) {
	getListingSql, args, _ := r.SqlBuilder.
		Select(listingColumns).
		From("listing").
		Where("id = ?", id).
		ToSql()

	return scanListing(r.Database.QueryRowContext(ctx, getListingSql, args...))
}

func (r *ListingRepo) GetListings(ctx context.Context) ([]entity.Listing, error) {
	getListingsSql, args, _ := r.SqlBuilder.
		Select(listingColumns).
		From("listing").
		OrderBy("id ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getListingsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]entity.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return listings, err
		}
		listings = append(listings, *listing)
	}
	if err = rows.Err(); err != nil {
		return listings, err
	}

	return listings, nil
}

// lockListing reads the lifecycle flags under FOR UPDATE so the transition
// decision is based on the state immediately preceding the operation.
func lockListing(tx *sql.Tx, r *postgres.Postgres, id int64) (isActive, isStarted, isEnded bool, err error) {
	lockSql, args, _ := r.SqlBuilder.
		Select("is_active, is_started, is_ended").
		From("listing").
		Where("id = ?", id).
		Suffix("FOR UPDATE").
		ToSql()

	err = tx.QueryRow(lockSql, args...).Scan(&isActive, &isStarted, &isEnded)
	if errors.Is(err, sql.ErrNoRows) {
		err = repo_errors.ErrNotFound
	}

	return isActive, isStarted, isEnded, err
}

func (r *ListingRepo) UpdateListingById(ctx context.Context, id int64, input *entity.UpdateListingInput) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, isStarted, _, err := lockListing(tx, r.Postgres, id)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if isStarted {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrInvalidState
	}

	updateSql, args, _ := r.SqlBuilder.
		Update("listing").
		Set("title", input.Title).
		Set("description", input.Description).
		Set("image_ref", input.ImageRef).
		Set("start_price", input.StartPrice).
		Where("id = ?", id).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(updateSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}

func (r *ListingRepo) DeleteListingById(ctx context.Context, id int64) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, isStarted, _, err := lockListing(tx, r.Postgres, id)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	var bidCount int
	countSql, args, _ := r.SqlBuilder.
		Select("bid_count").
		From("listing").
		Where("id = ?", id).
		RunWith(tx).
		ToSql()
	if err = tx.QueryRow(countSql, args...).Scan(&bidCount); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	if isStarted || bidCount > 0 {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrInvalidState
	}

	deleteSql, args, _ := r.SqlBuilder.
		Delete("listing").
		Where("id = ?", id).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(deleteSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}

func (r *ListingRepo) ToggleListingActive(ctx context.Context, id int64) (*entity.Listing, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	_, isStarted, _, err := lockListing(tx, r.Postgres, id)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}
	if isStarted {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, repo_errors.ErrInvalidState
	}

	toggleSql, args, _ := r.SqlBuilder.
		Update("listing").
		Set("is_active", squirrel.Expr("NOT is_active")).
		Where("id = ?", id).
		Suffix("RETURNING " + listingColumns).
		RunWith(tx).
		ToSql()

	listing, err := scanListing(tx.QueryRow(toggleSql, args...))
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return listing, nil
}

func (r *ListingRepo) StartAuction(ctx context.Context, id int64) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	isActive, isStarted, _, err := lockListing(tx, r.Postgres, id)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}
	if !isActive || isStarted {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return repo_errors.ErrInvalidState
	}

	startSql, args, _ := r.SqlBuilder.
		Update("listing").
		Set("is_started", true).
		Where("id = ?", id).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(startSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}

func (r *ListingRepo) EndAuction(ctx context.Context, id int64) (*entity.Listing, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	_, isStarted, isEnded, err := lockListing(tx, r.Postgres, id)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}
	if !isStarted || isEnded {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, repo_errors.ErrInvalidState
	}

	endSql, args, _ := r.SqlBuilder.
		Update("listing").
		Set("is_ended", true).
		Where("id = ?", id).
		Suffix("RETURNING " + listingColumns).
		RunWith(tx).
		ToSql()

	listing, err := scanListing(tx.QueryRow(endSql, args...))
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return nil, e
		}

		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return listing, nil
}
