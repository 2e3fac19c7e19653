package parcel

import (
	"context"
	"fmt"

	"bidding-service/internal/entities"
)

// Registry - локальная проекция посылок, открытых для торгов.
type Registry struct {
	repository Repository
}

func NewRegistry(repository Repository) *Registry {
	return &Registry{
		repository: repository,
	}
}

// RegisterPackage идемпотентно регистрирует открытую посылку отправителя.
func (r *Registry) RegisterPackage(ctx context.Context, packageModify entities.PackageModify) (*entities.Package, error) {
	if packageModify.TrackingID == nil || !isValidTrackingID(*packageModify.TrackingID) {
		return nil, ErrInvalidTrackingID
	}
	if packageModify.SenderID == nil || !isValidSenderID(*packageModify.SenderID) {
		return nil, ErrInvalidSenderID
	}

	pkg, err := r.repository.Upsert(ctx, entities.PackageModify{
		TrackingID: packageModify.TrackingID,
		SenderID:   packageModify.SenderID,
	})
	if err != nil {
		return nil, fmt.Errorf("register package: %w", err)
	}

	return pkg, nil
}

func (r *Registry) GetPackage(ctx context.Context, trackingID string) (*entities.Package, error) {
	if !isValidTrackingID(trackingID) {
		return nil, ErrInvalidTrackingID
	}

	pkg, err := r.repository.GetByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, fmt.Errorf("get package: %w", err)
	}

	return pkg, nil
}
