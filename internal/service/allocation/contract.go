//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=allocation_test
package allocation

import (
	"context"
	"time"

	"bidding-service/internal/entities"
)

type BidRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Bid, error)
	UpdateStatus(ctx context.Context, id int64, from, to entities.BidStatusType, selectedAt *time.Time) (*entities.Bid, error)
	TransitionPending(ctx context.Context, packageID string, to entities.BidStatusType, exceptBidID *int64) ([]entities.Bid, error)
}

type PackageRepository interface {
	GetForUpdate(ctx context.Context, trackingID string) (*entities.Package, error)
	Update(ctx context.Context, packageModify entities.PackageModify) (*entities.Package, error)
}

type DeadlineScheduler interface {
	Disarm(ctx context.Context, packageID string) (bool, error)
}

type EventWriter interface {
	Append(ctx context.Context, events []entities.BidEvent) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
