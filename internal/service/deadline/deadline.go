package deadline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bidding-service/internal/entities"
	"bidding-service/internal/pkg/metrics"
	"bidding-service/pkg/logger"
)

// Scheduler управляет окном торгов посылки: взводит и снимает дедлайн,
// периодически экспирит посылки с истекшим окном.
type Scheduler struct {
	packageRepository PackageRepository
	bidRepository     BidRepository
	eventWriter       EventWriter
	windowFactory     WindowFactory
	txManager         TxManager
	log               handlerLogger
	batchSize         uint64
}

func New(
	packageRepository PackageRepository,
	bidRepository BidRepository,
	eventWriter EventWriter,
	windowFactory WindowFactory,
	txManager TxManager,
	log handlerLogger,
	batchSize uint64,
) *Scheduler {
	return &Scheduler{
		packageRepository: packageRepository,
		bidRepository:     bidRepository,
		eventWriter:       eventWriter,
		windowFactory:     windowFactory,
		txManager:         txManager,
		log:               log,
		batchSize:         batchSize,
	}
}

// Arm взводит дедлайн от момента первой ставки. Идемпотентен: уже взведенный
// дедлайн не сдвигается, возвращается действующий и armed=false.
func (s *Scheduler) Arm(ctx context.Context, packageID string, firstBidAt time.Time) (time.Time, bool, error) {
	if strings.TrimSpace(packageID) == "" {
		return time.Time{}, false, ErrInvalidPackageID
	}

	deadline := s.windowFactory.CalculateDeadline(firstBidAt.UTC())

	effective, armed, err := s.packageRepository.ArmDeadline(ctx, packageID, deadline)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("arm deadline: %w", err)
	}

	return effective, armed, nil
}

// Disarm снимает дедлайн. Повторный вызов - no-op с disarmed=false.
func (s *Scheduler) Disarm(ctx context.Context, packageID string) (bool, error) {
	if strings.TrimSpace(packageID) == "" {
		return false, ErrInvalidPackageID
	}

	disarmed, err := s.packageRepository.DisarmDeadline(ctx, packageID)
	if err != nil {
		return false, fmt.Errorf("disarm deadline: %w", err)
	}

	return disarmed, nil
}

// SweepExpired экспирит pending ставки посылок с наступившим дедлайном.
// Каждая посылка обрабатывается в своей транзакции под блокировкой; сбой на одной
// не останавливает остальные, она останется в выборке и попадет в следующий тик.
func (s *Scheduler) SweepExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()

	packageIDs, err := s.packageRepository.GetExpiredOpen(ctx, now, s.batchSize)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("sweep timed out: %w", err)
		}
		return 0, fmt.Errorf("get expired packages: %w", err)
	}

	var (
		expiredBids int64
		errs        []error
	)
	for _, packageID := range packageIDs {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}

		expired, err := s.expirePackage(ctx, packageID)
		if err != nil {
			metrics.SweepFailuresTotal.Inc()
			s.log.With(
				logger.NewField("package_id", packageID),
				logger.NewField("error", err),
			).Warn("expire package")
			errs = append(errs, fmt.Errorf("package %s: %w", packageID, err))
			continue
		}
		expiredBids += expired
	}

	if len(errs) > 0 {
		return expiredBids, fmt.Errorf("%w: %w", ErrSweep, errors.Join(errs...))
	}
	return expiredBids, nil
}

func (s *Scheduler) expirePackage(ctx context.Context, packageID string) (int64, error) {
	var expiredCount int64

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		pkg, err := s.packageRepository.GetForUpdate(ctx, packageID)
		if err != nil {
			return fmt.Errorf("lock package: %w", err)
		}

		// между выборкой и блокировкой посылку могли распределить или отменить
		now := time.Now().UTC()
		if !pkg.DeadlineElapsed(now) {
			return nil
		}

		expired, err := s.bidRepository.TransitionPending(ctx, packageID, entities.BidExpired, nil)
		if err != nil {
			return fmt.Errorf("expire pending bids: %w", err)
		}

		expiredStatus := entities.PackageExpired
		_, err = s.packageRepository.Update(ctx, entities.PackageModify{
			TrackingID: &packageID,
			Status:     &expiredStatus,
		})
		if err != nil {
			return fmt.Errorf("update package status: %w", err)
		}

		events := make([]entities.BidEvent, 0, len(expired))
		for _, bid := range expired {
			events = append(events, entities.NewBidEvent(bid, pkg.SenderID, entities.ReasonDeadlineElapsed, now))
		}
		if err := s.eventWriter.Append(ctx, events); err != nil {
			return fmt.Errorf("append bid events: %w", err)
		}

		expiredCount = int64(len(expired))
		return nil
	})
	if err != nil {
		return 0, err
	}

	if expiredCount > 0 {
		metrics.BidTransitionsTotal.
			WithLabelValues(entities.BidExpired.String(), entities.ReasonDeadlineElapsed.String()).
			Add(float64(expiredCount))
	}
	return expiredCount, nil
}
