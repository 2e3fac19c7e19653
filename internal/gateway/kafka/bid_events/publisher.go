package bid_events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"bidding-service/internal/entities"
)

const (
	headerEventID   = "event_id"
	headerEventType = "event_type"
)

// Publisher пишет события ставок в kafka. Ключ - id посылки, поэтому
// события одной посылки попадают в одну партицию в порядке outbox.
type Publisher struct {
	producer producer
	topic    string
}

func New(producer producer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, events []entities.BidEvent) error {
	if len(events) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msgs := make([]*sarama.ProducerMessage, 0, len(events))
	for i := range events {
		msg, err := p.toMessage(&events[i])
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.producer.SendMessages(msgs); err != nil {
		return fmt.Errorf("publish %d bid events: %w", len(msgs), err)
	}
	return nil
}

func (p *Publisher) toMessage(event *entities.BidEvent) (*sarama.ProducerMessage, error) {
	payload, err := json.Marshal(bidEventMessage{
		ID:         event.ID,
		EventID:    event.EventID.String(),
		Type:       event.Type.String(),
		BidID:      event.BidID,
		PackageID:  event.PackageID,
		CourierID:  event.CourierID,
		SenderID:   event.SenderID,
		Status:     event.Status.String(),
		Reason:     event.Reason.String(),
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal bid event %s: %w", event.EventID, err)
	}

	return &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.PackageID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventID), Value: []byte(event.EventID.String())},
			{Key: []byte(headerEventType), Value: []byte(event.Type.String())},
		},
		Timestamp: event.OccurredAt,
	}, nil
}
