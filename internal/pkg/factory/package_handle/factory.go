package package_handle

import (
	"context"
	"errors"
	"fmt"

	"bidding-service/internal/entities"
	"bidding-service/internal/service/allocation"
	"bidding-service/internal/service/parcel"
)

type StatusHandlerFactory struct {
	registry  parcel.PackageRegistry
	canceller parcel.PackageCanceller
}

func NewStatusHandlerFactory(registry parcel.PackageRegistry, canceller parcel.PackageCanceller) *StatusHandlerFactory {
	return &StatusHandlerFactory{
		registry:  registry,
		canceller: canceller,
	}
}

func (f *StatusHandlerFactory) GetHandler(status entities.ParcelStatusType) (parcel.ExecuteFn, error) {
	switch status {
	case entities.ParcelCreated:
		return f.createdHandler, nil
	case entities.ParcelCancelled, entities.ParcelDelivered:
		return f.closingHandler, nil
	default:
		return nil, fmt.Errorf("%w: %s", parcel.ErrUndefinedStatus, status)
	}
}

func (f *StatusHandlerFactory) createdHandler(ctx context.Context, p entities.Parcel) error {
	_, err := f.registry.RegisterPackage(ctx, entities.PackageModify{
		TrackingID: &p.TrackingID,
		SenderID:   &p.SenderID,
	})
	if err != nil {
		return fmt.Errorf("register created package %s: %w", p.TrackingID, err)
	}
	return nil
}

// closingHandler закрывает торги от имени отправителя: отмененная или уже
// доставленная посылка больше не принимает ставки. Повторная доставка события
// или уже закрытые торги не считаются ошибкой.
func (f *StatusHandlerFactory) closingHandler(ctx context.Context, p entities.Parcel) error {
	_, err := f.canceller.CancelPackage(ctx, p.TrackingID, p.SenderID)
	if err != nil {
		if errors.Is(err, allocation.ErrPackageNotOpen) || errors.Is(err, parcel.ErrPackageNotFound) {
			return nil
		}
		return fmt.Errorf("cancel package %s: %w", p.TrackingID, err)
	}
	return nil
}
