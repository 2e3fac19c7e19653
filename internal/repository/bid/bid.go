package bid

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"bidding-service/internal/entities"
	"bidding-service/internal/repository"
	"bidding-service/internal/service/bid"
	"bidding-service/internal/service/parcel"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// колонки в порядке полей BidDB, см. pgx.RowToStructByPos
var bidColumns = []string{
	"id",
	"package_id",
	"courier_id",
	"proposed_price::text",
	"estimated_delivery_hours",
	"estimated_pickup_time",
	"message",
	"status",
	"created_at",
	"updated_at",
	"selected_at",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, bidModify entities.BidModify) (*entities.Bid, error) {
	bidModifyDB := FromDomainModify(&bidModify)

	query, args, err := qb.
		Insert("bids").
		Columns(
			"package_id",
			"courier_id",
			"proposed_price",
			"estimated_delivery_hours",
			"estimated_pickup_time",
			"message",
			"status",
			"created_at",
			"updated_at",
		).
		Values(
			bidModifyDB.PackageID,
			bidModifyDB.CourierID,
			sq.Expr("?::numeric", bidModifyDB.ProposedPrice),
			bidModifyDB.EstimatedDeliveryHours,
			bidModifyDB.EstimatedPickupTime,
			bidModifyDB.Message,
			bidModifyDB.Status,
			bidModifyDB.CreatedAt,
			bidModifyDB.CreatedAt,
		).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository create error: %w", err)
	}

	bidEntity, err := r.queryOne(ctx, query, args...)
	if err != nil {
		switch {
		case repository.IsPgConstraintViolation(err, repository.ConstraintPendingBidPerCourier):
			return nil, bid.ErrDuplicateBid
		case repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation):
			return nil, parcel.ErrPackageNotFound
		case repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation):
			return nil, fmt.Errorf("%w: %w", bid.ErrInvalidBid, err)
		}
		return nil, fmt.Errorf("unexpected bid repository create error: %w", err)
	}

	return bidEntity, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Bid, error) {
	query, args, err := qb.
		Select(bidColumns...).
		From("bids").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository get error: %w", err)
	}

	bidEntity, err := r.queryOne(ctx, query, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bid.ErrBidNotFound
		}
		return nil, fmt.Errorf("unexpected bid repository get error: %w", err)
	}

	return bidEntity, nil
}

// ListByPackage возвращает все ставки посылки (включая терминальные) в порядке создания.
// Порядок отображения задается сервисом.
func (r *Repository) ListByPackage(ctx context.Context, packageID string) ([]entities.Bid, error) {
	query, args, err := qb.
		Select(bidColumns...).
		From("bids").
		Where(sq.Eq{"package_id": packageID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository list error: %w", err)
	}

	bids, err := r.queryMany(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository list error: %w", err)
	}

	return bids, nil
}

func (r *Repository) ListByCourier(ctx context.Context, filter entities.CourierBidsFilter) ([]entities.Bid, error) {
	builder := qb.
		Select(bidColumns...).
		From("bids").
		Where(sq.Eq{"courier_id": filter.CourierID})

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": filter.Status.String()})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository list by courier error: %w", err)
	}

	bids, err := r.queryMany(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository list by courier error: %w", err)
	}

	return bids, nil
}

// UpdateStatus - compare-and-set перехода статуса. Если ставка уже не в статусе from,
// возвращается ErrInvalidState.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id int64,
	from, to entities.BidStatusType,
	selectedAt *time.Time,
) (*entities.Bid, error) {
	query, args, err := qb.
		Update("bids").
		Set("status", to.String()).
		Set("selected_at", selectedAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "status": from.String()}).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository update status error: %w", err)
	}

	bidEntity, err := r.queryOne(ctx, query, args...)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("%w: bid %d is not %s", bid.ErrInvalidState, id, from)
		case repository.IsPgConstraintViolation(err, repository.ConstraintSelectedBidPerPackage):
			return nil, fmt.Errorf("%w: package already has a selected bid", bid.ErrInvalidState)
		}
		return nil, fmt.Errorf("unexpected bid repository update status error: %w", err)
	}

	return bidEntity, nil
}

// TransitionPending переводит все pending ставки посылки в статус to, кроме exceptBidID.
// Возвращает затронутые ставки.
func (r *Repository) TransitionPending(
	ctx context.Context,
	packageID string,
	to entities.BidStatusType,
	exceptBidID *int64,
) ([]entities.Bid, error) {
	builder := qb.
		Update("bids").
		Set("status", to.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"package_id": packageID,
			"status":     entities.BidPending.String(),
		})

	if exceptBidID != nil {
		builder = builder.Where(sq.NotEq{"id": *exceptBidID})
	}

	query, args, err := builder.
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository transition pending error: %w", err)
	}

	bids, err := r.queryMany(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected bid repository transition pending error: %w", err)
	}

	return bids, nil
}

func (r *Repository) queryOne(ctx context.Context, query string, args ...any) (*entities.Bid, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	bidDB, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByPos[BidDB])
	if err != nil {
		return nil, err
	}

	return ToDomain(&bidDB)
}

func (r *Repository) queryMany(ctx context.Context, query string, args ...any) ([]entities.Bid, error) {
	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	bidsDB, err := pgx.CollectRows(rows, pgx.RowToStructByPos[BidDB])
	if err != nil {
		return nil, err
	}

	return ToDomainList(bidsDB)
}

func joinColumns() string {
	return strings.Join(bidColumns, ", ")
}
