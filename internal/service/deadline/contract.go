//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=deadline_test
package deadline

import (
	"context"
	"time"

	"bidding-service/internal/entities"
	"bidding-service/pkg/logger"
)

type PackageRepository interface {
	GetForUpdate(ctx context.Context, trackingID string) (*entities.Package, error)
	ArmDeadline(ctx context.Context, trackingID string, deadline time.Time) (time.Time, bool, error)
	DisarmDeadline(ctx context.Context, trackingID string) (bool, error)
	Update(ctx context.Context, packageModify entities.PackageModify) (*entities.Package, error)
	GetExpiredOpen(ctx context.Context, now time.Time, limit uint64) ([]string, error)
}

type BidRepository interface {
	TransitionPending(ctx context.Context, packageID string, to entities.BidStatusType, exceptBidID *int64) ([]entities.Bid, error)
}

type EventWriter interface {
	Append(ctx context.Context, events []entities.BidEvent) error
}

type WindowFactory interface {
	CalculateDeadline(firstBidAt time.Time) time.Time
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
