package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"taxi-dispatch/internal/entities"
	"taxi-dispatch/internal/gateway/notify"
	retrierconfig "taxi-dispatch/pkg/retrier"
	"taxi-dispatch/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 50 * time.Millisecond
	maxInterval     = 500 * time.Millisecond
	maxElapsedTime  = 2 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 3
)

// Publisher публикует события диспетчера в топик для чат-бота. Ключ
// сообщения id заказа, поэтому события одного заказа идут по порядку.
type Publisher struct {
	producer producer
	retrier  retrier
	topic    string
}

func New(producer producer, topic string) *Publisher {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     isRetryable,
	}

	return &Publisher{
		producer: producer,
		retrier:  backoff_adapter.New(retryConfig),
		topic:    topic,
	}
}

func (p *Publisher) NotifyDriver(ctx context.Context, driverID int64, event entities.Event) error {
	return p.publish(ctx, notify.NewEventMessage(notify.RecipientDriver, driverID, event))
}

func (p *Publisher) NotifyPassenger(ctx context.Context, passengerID int64, event entities.Event) error {
	return p.publish(ctx, notify.NewEventMessage(notify.RecipientPassenger, passengerID, event))
}

func (p *Publisher) publish(ctx context.Context, msg notify.EventMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	producerMsg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(msg.OrderID, 10)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("kind"), Value: []byte(msg.Kind)},
			{Key: []byte("recipient"), Value: []byte(msg.Recipient)},
		},
		Timestamp: msg.OccurredAt,
	}

	err = p.executeWithMetrics(ctx, msg.Kind, func(context.Context) error {
		_, _, err := p.producer.SendMessage(producerMsg)
		return err
	})
	if err != nil {
		return fmt.Errorf("publish %s event for order %d: %w", msg.Kind, msg.OrderID, err)
	}
	return nil
}

func (p *Publisher) executeWithMetrics(ctx context.Context, kind string, fn func(context.Context) error) error {
	var attempt uint64
	start := time.Now()

	err := p.retrier.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		return fn(ctx)
	})

	result := resultLabel(err)
	PublishDuration.WithLabelValues(kind, result).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		PublishRetriesTotal.WithLabelValues(kind, result).Inc()
	}

	return err
}

func isRetryable(err error) bool {
	if errors.Is(err, sarama.ErrOutOfBrokers) || errors.Is(err, sarama.ErrNotConnected) {
		return true
	}

	var kerr sarama.KError
	if !errors.As(err, &kerr) {
		return false
	}
	switch kerr {
	case sarama.ErrLeaderNotAvailable,
		sarama.ErrNotLeaderForPartition,
		sarama.ErrRequestTimedOut,
		sarama.ErrNotEnoughReplicas,
		sarama.ErrNotEnoughReplicasAfterAppend:
		return true
	default:
		return false
	}
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var kerr sarama.KError
	if errors.As(err, &kerr) {
		return kerr.Error()
	}
	return "error"
}
