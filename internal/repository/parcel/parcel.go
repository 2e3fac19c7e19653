package parcel

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"bidding-service/internal/entities"
	"bidding-service/internal/service/parcel"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const packageColumns = `tracking_id, sender_id, status, bid_count, bid_deadline,
	deadline_disarmed_at, selected_bid_id, created_at, updated_at`

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Upsert регистрирует посылку. Повторная регистрация тем же отправителем идемпотентна,
// чужим - ErrPackageConflict.
func (r *Repository) Upsert(ctx context.Context, packageModify entities.PackageModify) (*entities.Package, error) {
	packageModifyDB := FromDomainModify(&packageModify)

	query := `
		INSERT INTO packages (tracking_id, sender_id)
		VALUES ($1, $2)
		ON CONFLICT (tracking_id) DO UPDATE
			SET updated_at = packages.updated_at
			WHERE packages.sender_id = EXCLUDED.sender_id
		RETURNING ` + packageColumns

	packageDB, err := scanPackage(r.querier.QueryRow(
		ctx,
		query,
		packageModifyDB.TrackingID,
		packageModifyDB.SenderID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, parcel.ErrPackageConflict
		}
		return nil, fmt.Errorf("unexpected package repository upsert error: %w", err)
	}

	return ToDomain(packageDB), nil
}

func (r *Repository) GetByTrackingID(ctx context.Context, trackingID string) (*entities.Package, error) {
	query := `SELECT ` + packageColumns + `
		FROM packages
		WHERE tracking_id = $1`

	packageDB, err := scanPackage(r.querier.QueryRow(ctx, query, trackingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, parcel.ErrPackageNotFound
		}
		return nil, fmt.Errorf("unexpected package repository get error: %w", err)
	}

	return ToDomain(packageDB), nil
}

// GetForUpdate берет row-level lock на посылку до конца транзакции.
// Это и есть примитив эксклюзивности для всех мутаций ставок одной посылки.
func (r *Repository) GetForUpdate(ctx context.Context, trackingID string) (*entities.Package, error) {
	query := `SELECT ` + packageColumns + `
		FROM packages
		WHERE tracking_id = $1
		FOR UPDATE`

	packageDB, err := scanPackage(r.querier.QueryRowLocked(ctx, query, trackingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, parcel.ErrPackageNotFound
		}
		return nil, fmt.Errorf("unexpected package repository lock error: %w", err)
	}

	return ToDomain(packageDB), nil
}

func (r *Repository) IncrementBidCount(ctx context.Context, trackingID string) (int64, error) {
	query := `
		UPDATE packages
		SET bid_count = bid_count + 1,
			updated_at = NOW()
		WHERE tracking_id = $1
		RETURNING bid_count`

	var bidCount int64
	err := r.querier.QueryRow(ctx, query, trackingID).Scan(&bidCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, parcel.ErrPackageNotFound
		}
		return 0, fmt.Errorf("unexpected package repository increment bid count error: %w", err)
	}

	return bidCount, nil
}

// ArmDeadline ставит дедлайн только если он еще не установлен.
// Возвращает действующий дедлайн и признак того, что его поставил именно этот вызов.
func (r *Repository) ArmDeadline(ctx context.Context, trackingID string, deadline time.Time) (time.Time, bool, error) {
	query := `
		WITH armed AS (
			UPDATE packages
			SET bid_deadline = $2,
				updated_at = NOW()
			WHERE tracking_id = $1 AND bid_deadline IS NULL
			RETURNING bid_deadline
		)
		SELECT bid_deadline, TRUE FROM armed
		UNION ALL
		SELECT bid_deadline, FALSE FROM packages
		WHERE tracking_id = $1 AND NOT EXISTS (SELECT 1 FROM armed)`

	var (
		actual *time.Time
		armed  bool
	)
	err := r.querier.QueryRow(ctx, query, trackingID, deadline).Scan(&actual, &armed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return time.Time{}, false, parcel.ErrPackageNotFound
		}
		return time.Time{}, false, fmt.Errorf("unexpected package repository arm deadline error: %w", err)
	}

	if actual == nil {
		return time.Time{}, false, fmt.Errorf("unexpected package repository arm deadline error: deadline is not set for %s", trackingID)
	}

	return actual.UTC(), armed, nil
}

// DisarmDeadline идемпотентен: повторный вызов ничего не меняет и возвращает false.
func (r *Repository) DisarmDeadline(ctx context.Context, trackingID string) (bool, error) {
	query := `
		UPDATE packages
		SET deadline_disarmed_at = NOW(),
			updated_at = NOW()
		WHERE tracking_id = $1 AND deadline_disarmed_at IS NULL`

	result, err := r.querier.Exec(ctx, query, trackingID)
	if err != nil {
		return false, fmt.Errorf("unexpected package repository disarm deadline error: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *Repository) Update(ctx context.Context, packageModify entities.PackageModify) (*entities.Package, error) {
	packageModifyDB := FromDomainModify(&packageModify)

	builder := qb.
		Update("packages")

	// опционнные поля
	if packageModifyDB.Status != nil {
		builder = builder.Set("status", packageModifyDB.Status)
	}
	if packageModifyDB.SelectedBidID != nil {
		builder = builder.Set("selected_bid_id", packageModifyDB.SelectedBidID)
	}

	builder = builder.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"tracking_id": packageModifyDB.TrackingID}).
		Suffix("RETURNING " + packageColumns)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected package repository update error: %w", err)
	}

	packageDB, err := scanPackage(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, parcel.ErrPackageNotFound
		}
		return nil, fmt.Errorf("unexpected package repository update error: %w", err)
	}

	return ToDomain(packageDB), nil
}

// GetExpiredOpen возвращает посылки, которые sweep должен экспирить, самые старые дедлайны первыми.
func (r *Repository) GetExpiredOpen(ctx context.Context, now time.Time, limit uint64) ([]string, error) {
	query, args, err := qb.
		Select("tracking_id").
		From("packages").
		Where(sq.Eq{"status": entities.PackageOpen.String()}).
		Where(sq.Eq{"deadline_disarmed_at": nil}).
		Where(sq.LtOrEq{"bid_deadline": now}).
		OrderBy("bid_deadline ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected package repository get expired error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected package repository get expired error: %w", err)
	}

	trackingIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("unexpected package repository get expired error: %w", err)
	}

	return trackingIDs, nil
}

func scanPackage(row pgx.Row) (*PackageDB, error) {
	var packageDB PackageDB
	err := row.Scan(
		&packageDB.TrackingID,
		&packageDB.SenderID,
		&packageDB.Status,
		&packageDB.BidCount,
		&packageDB.BidDeadline,
		&packageDB.DeadlineDisarmedAt,
		&packageDB.SelectedBidID,
		&packageDB.CreatedAt,
		&packageDB.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &packageDB, nil
}
