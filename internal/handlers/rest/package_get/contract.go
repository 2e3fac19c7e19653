//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=package_get_test
package package_get

import (
	"context"

	"bidding-service/internal/entities"
	"bidding-service/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	GetPackage(ctx context.Context, trackingID string) (*entities.Package, error)
}
