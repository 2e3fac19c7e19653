package bid_events

import "time"

// bidEventMessage - json сообщения в KAFKA_BID_EVENTS_TOPIC.
type bidEventMessage struct {
	ID         int64     `json:"id"`
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	BidID      int64     `json:"bid_id"`
	PackageID  string    `json:"package_id"`
	CourierID  int64     `json:"courier_id"`
	SenderID   int64     `json:"sender_id"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"timestamp"`
}
