package kafkainfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cp-portal/internal/domain"
	"github.com/segmentio/kafka-go"
)

// Publisher writes activity events to a Kafka topic, keyed by account id.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: 10 * time.Second,
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, a domain.Activity) error {
	if p == nil || p.writer == nil {
		return nil
	}
	value, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(a.AccountID),
		Value: value,
		Time:  a.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(a.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
