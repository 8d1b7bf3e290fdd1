package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"taxi-dispatch/internal/pkg/config"
	"taxi-dispatch/pkg/logger"
)

const producerMaxRetries = 3

// NewSyncProducer синхронный producer для событий диспетчера: подтверждение
// от всех реплик, идемпотентная запись.
func NewSyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string) (sarama.SyncProducer, error) {
	version, err := sarama.ParseKafkaVersion(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", cfg.Sarama.Version, err)
	}

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = version
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Retry.Max = producerMaxRetries
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	saramaConfig.Net.MaxOpenRequests = 1

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("topic", cfg.EventsTopic),
	)

	if err := pingKafka(ctx, kafkaLog, brokers, saramaConfig); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return producer, nil
}
