//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=package_cancel_post_test
package package_cancel_post

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
	CancelPackage(ctx context.Context, packageID string, requesterID int64) (*entities.Cancellation, error)
}
