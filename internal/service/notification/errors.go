package notification

import "errors"

var (
	ErrInvalidFilter = errors.New("invalid event filter")
	ErrPublish       = errors.New("publish bid events")
)
