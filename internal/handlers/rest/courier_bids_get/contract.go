//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=courier_bids_get_test
package courier_bids_get

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
	ListCourierBids(ctx context.Context, filter entities.CourierBidsFilter) ([]entities.Bid, error)
}
