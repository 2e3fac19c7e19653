package kafka

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"bidding-service/pkg/logger"
	retrierconfig "bidding-service/pkg/retrier"
	"bidding-service/pkg/retrier/backoff_adapter"
)

const clientIDPrefix = "bidding-service"

// брокер и топики могут подняться позже сервиса (init-контейнер создает топики)
var connectRetry = retrierconfig.Config{
	InitialInterval: 1 * time.Second,
	MaxInterval:     30 * time.Second,
	MaxElapsedTime:  2 * time.Minute,
	Randomization:   0.5,
	Multiplier:      2,
}

// NewSaramaConfig - общая часть конфигурации для consumer и producer.
// role попадает в client.id, чтобы в метриках брокера роли различались.
func NewSaramaConfig(versionStr, role string) (*sarama.Config, error) {
	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}

	cfg := sarama.NewConfig()
	cfg.Version = version
	cfg.ClientID = clientIDPrefix + "-" + role
	cfg.Net.DialTimeout = 5 * time.Second
	cfg.Metadata.Retry.Max = 5
	cfg.Metadata.Retry.Backoff = 500 * time.Millisecond

	return cfg, nil
}

// ParseBrokers разбирает список брокеров из KAFKA_BROKERS ("host1:9092,host2:9092").
func ParseBrokers(raw string) []string {
	brokers := make([]string, 0, strings.Count(raw, ",")+1)
	for p := range strings.SplitSeq(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

// waitForTopics ждет, пока брокер ответит и в метаданных появятся все topics.
func waitForTopics(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config, topics ...string) error {
	retry := connectRetry
	retry.OnRetry = func(err error, next time.Duration) {
		log.Warn("kafka is not ready yet",
			logger.NewField("error", err),
			logger.NewField("next_attempt_in", next),
		)
	}

	var attempt uint64
	err := backoff_adapter.New(retry).ExecuteWithContext(ctx, func(context.Context) error {
		attempt++

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Warn("failed to close check client", logger.NewField("error", err))
			}
		}()

		existing, err := client.Topics()
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}
		if missing := missingTopics(existing, topics); len(missing) > 0 {
			return fmt.Errorf("topics not found: %s", strings.Join(missing, ","))
		}
		return nil
	})
	if err != nil {
		log.Error("kafka unavailable", logger.NewField("error", err), logger.NewField("attempts", attempt))
		return fmt.Errorf("wait for kafka: %w", err)
	}

	log.Info("kafka is ready", logger.NewField("attempts", attempt), logger.NewField("topics", topics))
	return nil
}

func missingTopics(existing, required []string) []string {
	var missing []string
	for _, topic := range required {
		if !slices.Contains(existing, topic) {
			missing = append(missing, topic)
		}
	}
	return missing
}
