package package_status_changed

import (
	"encoding/json"
	"errors"
	"fmt"
)

type statusChangedEvent struct {
	TrackingID string `json:"tracking_id"`
	Status     string `json:"status"`
}

// decodeEvent разбирает сообщение. Tracking-service ключует сообщения по tracking_id,
// поэтому ключ подставляется, если поле в теле пустое.
func decodeEvent(key, value []byte) (statusChangedEvent, error) {
	var event statusChangedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		return statusChangedEvent{}, fmt.Errorf("decode: %w", err)
	}
	if event.TrackingID == "" {
		event.TrackingID = string(key)
	}

	switch {
	case event.TrackingID == "":
		return statusChangedEvent{}, errors.New("tracking_id is empty")
	case event.Status == "":
		return statusChangedEvent{}, errors.New("status is empty")
	}
	return event, nil
}
