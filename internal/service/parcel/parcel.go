package parcel

import (
	"context"
	"fmt"

	"bidding-service/internal/entities"
)

// Service обрабатывает изменения статуса посылки из внешнего tracking-service.
type Service struct {
	parcelGateway ParcelGateway
	statusFactory HandlerFactory
}

func New(parcelGateway ParcelGateway, statusFactory HandlerFactory) *Service {
	return &Service{
		parcelGateway: parcelGateway,
		statusFactory: statusFactory,
	}
}

func (s *Service) ProcessPackageStatusChange(ctx context.Context, parcelModify entities.ParcelModify) (*entities.Parcel, error) {
	if parcelModify.TrackingID == nil || parcelModify.Status == nil {
		return nil, fmt.Errorf("tracking id and status are required")
	}

	// событие могло устареть, действуем по статусу из tracking-service
	parcel, err := s.parcelGateway.GetParcelByTrackingID(ctx, *parcelModify.TrackingID)
	if err != nil {
		return nil, fmt.Errorf("get parcel from tracking-service: %w", err)
	}

	// на неизвестный статус посылка возвращается вместе с ErrUndefinedStatus
	executeFn, err := s.statusFactory.GetHandler(parcel.Status)
	if err != nil {
		return parcel, fmt.Errorf("dispatch status: %w", err)
	}

	if err := executeFn(ctx, *parcel); err != nil {
		return nil, err
	}

	return parcel, nil
}
