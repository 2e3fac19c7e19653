package rate_limiter

import (
	"time"

	"bidding-service/pkg/logger"
)

// KeyedLimiter - отдельный бакет на каждого вызывающего.
// При отказе возвращает, через сколько стоит повторить.
type KeyedLimiter interface {
	ReserveKey(key string) (bool, time.Duration)
}

type handlerLogger interface {
	Warn(msg string, fields ...logger.Field)
}
