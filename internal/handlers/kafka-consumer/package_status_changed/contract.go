package package_status_changed

import (
	"context"

	"bidding-service/internal/entities"
	"bidding-service/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ProcessPackageStatusChange(ctx context.Context, parcelModify entities.ParcelModify) (*entities.Parcel, error)
}
