package allocation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bidding-service/internal/entities"
	"bidding-service/internal/pkg/metrics"
	"bidding-service/internal/service/bid"
)

// Coordinator выбирает победителя торгов и отменяет посылки.
// Обе операции - одна транзакция под блокировкой строки посылки.
type Coordinator struct {
	bidRepository     BidRepository
	packageRepository PackageRepository
	deadlineScheduler DeadlineScheduler
	eventWriter       EventWriter
	txManager         TxManager
}

func New(
	bidRepository BidRepository,
	packageRepository PackageRepository,
	deadlineScheduler DeadlineScheduler,
	eventWriter EventWriter,
	txManager TxManager,
) *Coordinator {
	return &Coordinator{
		bidRepository:     bidRepository,
		packageRepository: packageRepository,
		deadlineScheduler: deadlineScheduler,
		eventWriter:       eventWriter,
		txManager:         txManager,
	}
}

// SelectBid переводит ставку в selected, остальные pending ставки посылки в rejected,
// посылку в allocated и снимает дедлайн. Либо коммитится все, либо ничего.
func (c *Coordinator) SelectBid(ctx context.Context, bidID, requesterID int64) (*entities.Allocation, error) {
	if bidID <= 0 {
		return nil, ErrInvalidBidID
	}
	if requesterID <= 0 {
		return nil, ErrInvalidRequesterID
	}

	var allocation entities.Allocation
	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		target, err := c.bidRepository.GetByID(ctx, bidID)
		if err != nil {
			return fmt.Errorf("get bid: %w", err)
		}

		pkg, err := c.packageRepository.GetForUpdate(ctx, target.PackageID)
		if err != nil {
			return fmt.Errorf("lock package: %w", err)
		}

		if pkg.SenderID != requesterID {
			return ErrForbidden
		}

		// перечитываем под блокировкой: ставку могли отозвать или экспирить
		current, err := c.bidRepository.GetByID(ctx, bidID)
		if err != nil {
			return fmt.Errorf("reread bid: %w", err)
		}

		now := time.Now().UTC()
		if current.Status != entities.BidPending {
			return fmt.Errorf("%w: bid is %s", ErrBidNoLongerAvailable, current.Status)
		}
		if !pkg.IsOpenForBidding(now) {
			return fmt.Errorf("%w: package is %s", ErrBidNoLongerAvailable, describePackage(pkg, now))
		}

		winner, err := c.bidRepository.UpdateStatus(ctx, bidID, entities.BidPending, entities.BidSelected, &now)
		if err != nil {
			if errors.Is(err, bid.ErrInvalidState) {
				return fmt.Errorf("%w: %w", ErrBidNoLongerAvailable, err)
			}
			return fmt.Errorf("select bid: %w", err)
		}

		rejected, err := c.bidRepository.TransitionPending(ctx, pkg.TrackingID, entities.BidRejected, &bidID)
		if err != nil {
			return fmt.Errorf("reject competing bids: %w", err)
		}

		allocatedStatus := entities.PackageAllocated
		updatedPackage, err := c.packageRepository.Update(ctx, entities.PackageModify{
			TrackingID:    &pkg.TrackingID,
			Status:        &allocatedStatus,
			SelectedBidID: &winner.ID,
		})
		if err != nil {
			return fmt.Errorf("allocate package: %w", err)
		}

		if _, err := c.deadlineScheduler.Disarm(ctx, pkg.TrackingID); err != nil {
			return fmt.Errorf("disarm deadline: %w", err)
		}

		events := make([]entities.BidEvent, 0, len(rejected)+1)
		events = append(events, entities.NewBidEvent(*winner, pkg.SenderID, entities.ReasonNone, now))
		for _, r := range rejected {
			events = append(events, entities.NewBidEvent(r, pkg.SenderID, entities.ReasonOutbid, now))
		}
		if err := c.eventWriter.Append(ctx, events); err != nil {
			return fmt.Errorf("append bid events: %w", err)
		}

		allocation = entities.Allocation{
			Package:  *updatedPackage,
			Winner:   *winner,
			Rejected: rejected,
		}
		return nil
	})
	if err != nil {
		metrics.AllocationsTotal.WithLabelValues(allocationResult(err)).Inc()
		return nil, err
	}

	metrics.AllocationsTotal.WithLabelValues("selected").Inc()
	metrics.BidTransitionsTotal.WithLabelValues(entities.BidSelected.String(), "").Inc()
	metrics.BidTransitionsTotal.
		WithLabelValues(entities.BidRejected.String(), entities.ReasonOutbid.String()).
		Add(float64(len(allocation.Rejected)))

	return &allocation, nil
}

// CancelPackage отменяет открытую посылку от имени отправителя.
// Pending ставки уходят в rejected с причиной package_cancelled.
func (c *Coordinator) CancelPackage(ctx context.Context, packageID string, requesterID int64) (*entities.Cancellation, error) {
	if strings.TrimSpace(packageID) == "" {
		return nil, ErrInvalidPackageID
	}
	if requesterID <= 0 {
		return nil, ErrInvalidRequesterID
	}

	var cancellation entities.Cancellation
	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		pkg, err := c.packageRepository.GetForUpdate(ctx, packageID)
		if err != nil {
			return fmt.Errorf("lock package: %w", err)
		}

		if pkg.SenderID != requesterID {
			return ErrForbidden
		}

		if pkg.Status != entities.PackageOpen {
			return fmt.Errorf("%w: package is %s", ErrPackageNotOpen, pkg.Status)
		}

		rejected, err := c.bidRepository.TransitionPending(ctx, packageID, entities.BidRejected, nil)
		if err != nil {
			return fmt.Errorf("reject pending bids: %w", err)
		}

		cancelledStatus := entities.PackageCancelled
		updatedPackage, err := c.packageRepository.Update(ctx, entities.PackageModify{
			TrackingID: &packageID,
			Status:     &cancelledStatus,
		})
		if err != nil {
			return fmt.Errorf("cancel package: %w", err)
		}

		if _, err := c.deadlineScheduler.Disarm(ctx, packageID); err != nil {
			return fmt.Errorf("disarm deadline: %w", err)
		}

		now := time.Now().UTC()
		events := make([]entities.BidEvent, 0, len(rejected))
		for _, r := range rejected {
			events = append(events, entities.NewBidEvent(r, pkg.SenderID, entities.ReasonPackageCancelled, now))
		}
		if err := c.eventWriter.Append(ctx, events); err != nil {
			return fmt.Errorf("append bid events: %w", err)
		}

		cancellation = entities.Cancellation{
			Package:  *updatedPackage,
			Rejected: rejected,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BidTransitionsTotal.
		WithLabelValues(entities.BidRejected.String(), entities.ReasonPackageCancelled.String()).
		Add(float64(len(cancellation.Rejected)))

	return &cancellation, nil
}

func describePackage(pkg *entities.Package, now time.Time) string {
	if pkg.Status == entities.PackageOpen && pkg.BidDeadline != nil && !now.Before(*pkg.BidDeadline) {
		return "past its bidding deadline"
	}
	return pkg.Status.String()
}

func allocationResult(err error) string {
	switch {
	case errors.Is(err, ErrBidNoLongerAvailable):
		return "conflict"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}
