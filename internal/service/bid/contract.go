//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bid_test
package bid

import (
	"context"
	"time"

	"bidding-service/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, bidModify entities.BidModify) (*entities.Bid, error)
	GetByID(ctx context.Context, id int64) (*entities.Bid, error)
	ListByPackage(ctx context.Context, packageID string) ([]entities.Bid, error)
	ListByCourier(ctx context.Context, filter entities.CourierBidsFilter) ([]entities.Bid, error)
	UpdateStatus(ctx context.Context, id int64, from, to entities.BidStatusType, selectedAt *time.Time) (*entities.Bid, error)
}

type PackageRepository interface {
	GetByTrackingID(ctx context.Context, trackingID string) (*entities.Package, error)
	GetForUpdate(ctx context.Context, trackingID string) (*entities.Package, error)
	IncrementBidCount(ctx context.Context, trackingID string) (int64, error)
}

type DeadlineScheduler interface {
	Arm(ctx context.Context, packageID string, firstBidAt time.Time) (time.Time, bool, error)
}

type EventWriter interface {
	Append(ctx context.Context, events []entities.BidEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
