package event

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"bidding-service/internal/entities"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const eventColumns = `id, event_id, type, bid_id, package_id, courier_id, sender_id,
	status, reason, occurred_at, published_at`

// Repository - transactional outbox событий по ставкам.
type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Append пишет события в outbox. Вызывается внутри той же транзакции, что и изменение ставок.
func (r *Repository) Append(ctx context.Context, events []entities.BidEvent) error {
	if len(events) == 0 {
		return nil
	}

	query := `
		INSERT INTO bid_events (event_id, type, bid_id, package_id, courier_id, sender_id, status, reason, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	batch := &pgx.Batch{}
	for i := range events {
		eventDB := FromDomain(&events[i])
		batch.Queue(
			query,
			eventDB.EventID,
			eventDB.Type,
			eventDB.BidID,
			eventDB.PackageID,
			eventDB.CourierID,
			eventDB.SenderID,
			eventDB.Status,
			eventDB.Reason,
			eventDB.OccurredAt,
		)
	}

	results := r.querier.SendBatch(ctx, batch)
	for range events {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("unexpected event repository append error: %w", err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("unexpected event repository append error: %w", err)
	}
	return nil
}

// ClaimUnpublished блокирует пачку неопубликованных событий. Параллельные relay-и
// пропускают чужие строки (SKIP LOCKED), поэтому одно событие не публикуется дважды за тик.
func (r *Repository) ClaimUnpublished(ctx context.Context, limit uint64) ([]entities.BidEvent, error) {
	query := `SELECT ` + eventColumns + `
		FROM bid_events
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`

	rows, err := r.querier.QueryLocked(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository claim error: %w", err)
	}

	eventsDB, err := pgx.CollectRows(rows, pgx.RowToStructByPos[BidEventDB])
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository claim error: %w", err)
	}

	return ToDomainList(eventsDB), nil
}

func (r *Repository) MarkPublished(ctx context.Context, ids []int64, publishedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		UPDATE bid_events
		SET published_at = $2
		WHERE id = ANY($1) AND published_at IS NULL`

	result, err := r.querier.Exec(ctx, query, ids, publishedAt)
	if err != nil {
		return 0, fmt.Errorf("unexpected event repository mark published error: %w", err)
	}

	return result.RowsAffected(), nil
}

// ListByPackage - pull-лента событий посылки с курсором по id.
func (r *Repository) ListByPackage(ctx context.Context, filter entities.EventFilter) ([]entities.BidEvent, error) {
	builder := qb.
		Select(eventColumns).
		From("bid_events").
		Where(sq.Eq{"package_id": filter.PackageID}).
		Where(sq.Gt{"id": filter.AfterID}).
		OrderBy("id ASC")

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository list error: %w", err)
	}

	eventsDB, err := pgx.CollectRows(rows, pgx.RowToStructByPos[BidEventDB])
	if err != nil {
		return nil, fmt.Errorf("unexpected event repository list error: %w", err)
	}

	return ToDomainList(eventsDB), nil
}
