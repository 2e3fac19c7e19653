//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=bid_withdraw_post_test
package bid_withdraw_post

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
	WithdrawBid(ctx context.Context, bidID, requesterID int64) (*entities.Bid, error)
}
