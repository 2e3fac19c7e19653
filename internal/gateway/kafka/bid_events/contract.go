package bid_events

import "github.com/IBM/sarama"

type producer interface {
	SendMessages(msgs []*sarama.ProducerMessage) error
}
