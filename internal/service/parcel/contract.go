//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=parcel_test
package parcel

import (
	"context"

	"bidding-service/internal/entities"
)

type Repository interface {
	Upsert(ctx context.Context, packageModify entities.PackageModify) (*entities.Package, error)
	GetByTrackingID(ctx context.Context, trackingID string) (*entities.Package, error)
}

type ParcelGateway interface {
	GetParcelByTrackingID(ctx context.Context, trackingID string) (*entities.Parcel, error)
}

type PackageRegistry interface {
	RegisterPackage(ctx context.Context, packageModify entities.PackageModify) (*entities.Package, error)
}

type PackageCanceller interface {
	CancelPackage(ctx context.Context, packageID string, requesterID int64) (*entities.Cancellation, error)
}

type (
	ExecuteFn      func(ctx context.Context, parcel entities.Parcel) error
	HandlerFactory interface {
		GetHandler(status entities.ParcelStatusType) (ExecuteFn, error)
	}
)
