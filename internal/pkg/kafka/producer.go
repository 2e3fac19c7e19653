package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"bidding-service/internal/pkg/config"
	"bidding-service/pkg/logger"
)

// Producer - синхронный producer: SendMessages возвращается после ack от всех ISR.
type Producer struct {
	log      logger.Logger
	producer sarama.SyncProducer
}

func NewProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string) (*Producer, error) {
	saramaConfig, err := NewSaramaConfig(cfg.Sarama.Version, "producer")
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Net.MaxOpenRequests = 1

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("role", "producer"),
	)

	if err := waitForTopics(ctx, kafkaLog, brokers, saramaConfig, cfg.BidEventsTopic); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync producer: %w", err)
	}

	return &Producer{
		log:      kafkaLog,
		producer: producer,
	}, nil
}

func (p *Producer) SendMessages(msgs []*sarama.ProducerMessage) error {
	err := p.producer.SendMessages(msgs)
	if err != nil {
		var producerErrs sarama.ProducerErrors
		if errors.As(err, &producerErrs) && len(producerErrs) > 0 {
			p.log.With(
				logger.NewField("failed", len(producerErrs)),
				logger.NewField("total", len(msgs)),
				logger.NewField("error", producerErrs[0].Err),
			).Error("Kafka producer failed to deliver messages")
		}
		return fmt.Errorf("send messages: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}
