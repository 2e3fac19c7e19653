package bid

import (
	"context"
	"fmt"
	"time"

	"bidding-service/internal/entities"
	"bidding-service/internal/pkg/metrics"
)

const (
	defaultCourierBidsLimit uint64 = 100
	maxCourierBidsLimit     uint64 = 500
)

// Service - реестр ставок: подача, отзыв и чтение ставок по посылке.
type Service struct {
	repository        Repository
	packageRepository PackageRepository
	deadlineScheduler DeadlineScheduler
	eventWriter       EventWriter
	txManager         TxManager
}

func New(
	repository Repository,
	packageRepository PackageRepository,
	deadlineScheduler DeadlineScheduler,
	eventWriter EventWriter,
	txManager TxManager,
) *Service {
	return &Service{
		repository:        repository,
		packageRepository: packageRepository,
		deadlineScheduler: deadlineScheduler,
		eventWriter:       eventWriter,
		txManager:         txManager,
	}
}

// SubmitBid создает pending ставку курьера. Первая ставка на посылку взводит дедлайн.
func (s *Service) SubmitBid(ctx context.Context, bidModify entities.BidModify) (*entities.Bid, error) {
	if err := validateSubmit(bidModify); err != nil {
		return nil, err
	}

	var created *entities.Bid
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		pkg, err := s.packageRepository.GetForUpdate(ctx, *bidModify.PackageID)
		if err != nil {
			return fmt.Errorf("lock package: %w", err)
		}

		// дедлайн проверяется здесь, а не только sweep-ом: sweep может отставать
		now := time.Now().UTC()
		if !pkg.IsOpenForBidding(now) {
			return ErrBiddingClosed
		}

		pending := entities.BidPending
		bidModify.Status = &pending
		bidModify.CreatedAt = &now

		bid, err := s.repository.Create(ctx, bidModify)
		if err != nil {
			return fmt.Errorf("create bid: %w", err)
		}

		if _, err := s.packageRepository.IncrementBidCount(ctx, pkg.TrackingID); err != nil {
			return fmt.Errorf("increment bid count: %w", err)
		}

		if pkg.BidDeadline == nil {
			if _, _, err := s.deadlineScheduler.Arm(ctx, pkg.TrackingID, now); err != nil {
				return fmt.Errorf("arm deadline: %w", err)
			}
		}

		event := entities.NewBidEvent(*bid, pkg.SenderID, entities.ReasonNone, now)
		if err := s.eventWriter.Append(ctx, []entities.BidEvent{event}); err != nil {
			return fmt.Errorf("append bid event: %w", err)
		}

		created = bid
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BidTransitionsTotal.WithLabelValues(entities.BidPending.String(), "").Inc()
	return created, nil
}

// WithdrawBid переводит ставку курьера в withdrawn. Повторный отзыв - ErrInvalidState.
func (s *Service) WithdrawBid(ctx context.Context, bidID, requesterID int64) (*entities.Bid, error) {
	if !isValidBidID(bidID) {
		return nil, ErrInvalidBidID
	}
	if !isValidCourierID(requesterID) {
		return nil, ErrInvalidCourierID
	}

	var withdrawn *entities.Bid
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.repository.GetByID(ctx, bidID)
		if err != nil {
			return fmt.Errorf("get bid: %w", err)
		}

		if current.CourierID != requesterID {
			return ErrForbidden
		}

		if current.Status != entities.BidPending {
			return fmt.Errorf("%w: bid %d is %s", ErrInvalidState, bidID, current.Status)
		}

		pkg, err := s.packageRepository.GetForUpdate(ctx, current.PackageID)
		if err != nil {
			return fmt.Errorf("lock package: %w", err)
		}

		// после дедлайна ставка принадлежит sweep-у, даже если он еще не прошел
		now := time.Now().UTC()
		if !pkg.IsOpenForBidding(now) {
			return fmt.Errorf("%w: package %s", ErrBiddingClosed, pkg.TrackingID)
		}

		// под блокировкой статус мог смениться, поэтому переход через compare-and-set
		bid, err := s.repository.UpdateStatus(ctx, bidID, entities.BidPending, entities.BidWithdrawn, nil)
		if err != nil {
			return fmt.Errorf("withdraw bid: %w", err)
		}

		event := entities.NewBidEvent(*bid, pkg.SenderID, entities.ReasonNone, now)
		if err := s.eventWriter.Append(ctx, []entities.BidEvent{event}); err != nil {
			return fmt.Errorf("append bid event: %w", err)
		}

		withdrawn = bid
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BidTransitionsTotal.WithLabelValues(entities.BidWithdrawn.String(), "").Inc()
	return withdrawn, nil
}

func (s *Service) ListBids(ctx context.Context, packageID string) (*entities.PackageBids, error) {
	if !isValidPackageID(packageID) {
		return nil, ErrInvalidPackageID
	}

	pkg, err := s.packageRepository.GetByTrackingID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("get package: %w", err)
	}

	bids, err := s.repository.ListByPackage(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}

	sortForDisplay(bids)

	return &entities.PackageBids{
		Package: *pkg,
		Bids:    bids,
	}, nil
}

func (s *Service) ListCourierBids(ctx context.Context, filter entities.CourierBidsFilter) ([]entities.Bid, error) {
	if !isValidCourierID(filter.CourierID) {
		return nil, ErrInvalidCourierID
	}

	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidBid, *filter.Status)
	}

	if filter.Limit == 0 {
		filter.Limit = defaultCourierBidsLimit
	}
	filter.Limit = min(filter.Limit, maxCourierBidsLimit)

	bids, err := s.repository.ListByCourier(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list courier bids: %w", err)
	}

	return bids, nil
}
