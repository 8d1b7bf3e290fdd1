package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"taxi-dispatch/pkg/logger"
	retrierconfig "taxi-dispatch/pkg/retrier"
	"taxi-dispatch/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 1 * time.Second
	maxInterval     = 30 * time.Second
	maxElapsedTime  = 2 * time.Minute
	randomization   = 0.5
	multiplier      = 2
)

func pingKafka(ctx context.Context, log logger.Logger, brokers []string, cfg *sarama.Config) error {
	var attempt uint64

	retrier := backoff_adapter.New(retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		ShouldRetry:     nil, // все ошибки ретраим
		OnRetry: func(err error, next time.Duration) {
			log.Warn("Kafka is not ready",
				logger.NewField("attempt", attempt),
				logger.NewField("retry_in", next),
				logger.NewField("error", err),
			)
		},
	})

	err := retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++

		client, err := sarama.NewClient(brokers, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error("failed to close Kafka connection", logger.NewField("error", err))
			}
		}()

		_, err = client.Topics()
		return err
	})
	if err != nil {
		log.Error("Kafka connection failed after retries",
			logger.NewField("error", err),
			logger.NewField("attempts", attempt),
		)
		return fmt.Errorf("failed to connect to Kafka: %w", err)
	}

	log.Info("Kafka connection established", logger.NewField("attempts", attempt))
	return nil
}
