package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"bidding-service/internal/pkg/config"
	"bidding-service/internal/pkg/metrics"
	"bidding-service/pkg/logger"
	retrierconfig "bidding-service/pkg/retrier"
	"bidding-service/pkg/retrier/backoff_adapter"
)

// после rebalance или потери брокера сессия пересоздается; подряд идущие
// неудачи ограничены, чтобы воркер упал и был перезапущен оркестратором
var consumeRetry = retrierconfig.Config{
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     15 * time.Second,
	MaxElapsedTime:  0,
	Randomization:   0.5,
	Multiplier:      2,
	MaxRetries:      10,
	ShouldRetry: func(err error) bool {
		return !errors.Is(err, sarama.ErrClosedConsumerGroup)
	},
}

// Consumer читает события жизненного цикла посылок из cfg.Topic в группе cfg.ConsumerGroup.
type Consumer struct {
	log     logger.Logger
	client  sarama.ConsumerGroup
	topic   string
	handler sarama.ConsumerGroupHandler
}

func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	saramaConfig, err := NewSaramaConfig(cfg.Sarama.Version, "consumer")
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = cfg.Sarama.ConsumerOffsetsAutocommit
	// события одной посылки идут в одну партицию, sticky сохраняет ее за тем же воркером
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{
		sarama.NewBalanceStrategySticky(),
	}

	brokers := ParseBrokers(cfg.Brokers)
	kafkaLog := log.With(
		logger.NewField("role", "consumer"),
		logger.NewField("group", cfg.ConsumerGroup),
		logger.NewField("topic", cfg.Topic),
	)

	if err := waitForTopics(ctx, kafkaLog, brokers, saramaConfig, cfg.Topic); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	client, err := sarama.NewConsumerGroup(brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("create consumer group: %w", err)
	}

	return &Consumer{
		log:     kafkaLog,
		client:  client,
		topic:   cfg.Topic,
		handler: handler,
	}, nil
}

// Start блокируется до отмены ctx или закрытия группы.
// Consume возвращается на каждом rebalance, поэтому крутится в цикле.
func (c *Consumer) Start(ctx context.Context) error {
	go c.drainErrors()

	retrier := backoff_adapter.New(withRetryLog(consumeRetry, c.log))

	for {
		err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
			return c.client.Consume(ctx, []string{c.topic}, c.handler)
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			return fmt.Errorf("consume %s: %w", c.topic, err)
		}

		c.log.Debug("consumer session ended, rejoining group")
	}
}

func (c *Consumer) drainErrors() {
	for err := range c.client.Errors() {
		metrics.ConsumerErrorsTotal.WithLabelValues(c.topic).Inc()
		c.log.Warn("consumer group error", logger.NewField("error", err))
	}
}

func (c *Consumer) Close() error {
	return c.client.Close()
}

func withRetryLog(cfg retrierconfig.Config, log logger.Logger) retrierconfig.Config {
	cfg.OnRetry = func(err error, next time.Duration) {
		log.Warn("consume failed, retrying",
			logger.NewField("error", err),
			logger.NewField("next_attempt_in", next),
		)
	}
	return cfg
}
