// Package kafka relays invalidation notices to a Kafka topic so that caches
// running outside this process can drop stale order views.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storefront/internal/core/domain/model/invalidation"
	"storefront/internal/core/ports"

	"github.com/IBM/sarama"
)

var _ ports.InvalidationPublisher = (*Publisher)(nil)

// Message is the JSON value written for every notice. The record key is the
// order id so notices for one order stay in one partition.
type Message struct {
	ID         string    `json:"id"`
	Event      string    `json:"event"`
	OrderID    string    `json:"orderId"`
	Tags       []string  `json:"tags"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewMessage converts a notice into its wire form.
func NewMessage(n invalidation.Notice) Message {
	tags := make([]string, 0, len(n.Tags))
	for _, tag := range n.Tags {
		tags = append(tags, tag.String())
	}
	return Message{
		ID:         n.ID.String(),
		Event:      string(n.Event),
		OrderID:    n.OrderID.String(),
		Tags:       tags,
		OccurredAt: n.OccurredAt,
	}
}

type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewSyncProducer dials brokers with acknowledgements from all in-sync replicas.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka: no brokers configured")
	}

	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Version = sarama.V2_6_0_0

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}
	return producer, nil
}

func NewPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) (*Publisher, error) {
	if producer == nil {
		return nil, errors.New("kafka: producer is required")
	}
	if topic == "" {
		return nil, errors.New("kafka: topic is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger.With("component", "kafka_invalidation_publisher"),
	}, nil
}

// Publish sends every notice as one batch. A failed batch is reported as an
// error so the relay keeps the notices pending and retries them.
func (p *Publisher) Publish(ctx context.Context, notices ...invalidation.Notice) error {
	if len(notices) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	messages := make([]*sarama.ProducerMessage, 0, len(notices))
	for _, notice := range notices {
		value, err := json.Marshal(NewMessage(notice))
		if err != nil {
			return fmt.Errorf("kafka: encode notice %s: %w", notice.ID, err)
		}
		messages = append(messages, &sarama.ProducerMessage{
			Topic:     p.topic,
			Key:       sarama.StringEncoder(notice.OrderID.String()),
			Value:     sarama.ByteEncoder(value),
			Timestamp: notice.OccurredAt,
		})
	}

	if err := p.producer.SendMessages(messages); err != nil {
		p.logger.ErrorContext(ctx, "failed to send invalidation notices",
			"topic", p.topic, "count", len(messages), "error", err)
		return fmt.Errorf("kafka: send notices: %w", err)
	}

	p.logger.DebugContext(ctx, "invalidation notices sent", "topic", p.topic, "count", len(messages))
	return nil
}

// Close releases the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
