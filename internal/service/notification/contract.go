//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=notification_test
package notification

import (
	"context"
	"time"

	"bidding-service/internal/entities"
)

type EventRepository interface {
	ClaimUnpublished(ctx context.Context, limit uint64) ([]entities.BidEvent, error)
	MarkPublished(ctx context.Context, ids []int64, publishedAt time.Time) (int64, error)
	ListByPackage(ctx context.Context, filter entities.EventFilter) ([]entities.BidEvent, error)
}

type PackageRepository interface {
	GetByTrackingID(ctx context.Context, trackingID string) (*entities.Package, error)
}

// Publisher доставляет события во внешнюю шину (kafka).
type Publisher interface {
	Publish(ctx context.Context, events []entities.BidEvent) error
}

// Broadcaster раздает события подписчикам внутри процесса (SSE). Не блокируется.
type Broadcaster interface {
	Broadcast(events []entities.BidEvent)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
