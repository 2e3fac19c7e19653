//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stream_get_test
package stream_get

import (
	"bidding-service/internal/pkg/hub"
	"bidding-service/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Subscriber interface {
	Subscribe(topic hub.Topic) *hub.Subscription
	Unsubscribe(sub *hub.Subscription)
}
