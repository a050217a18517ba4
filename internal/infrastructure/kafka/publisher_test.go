package kafkainfra

import (
	"context"
	"testing"

	"github.com/cp-portal/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestNewPublisher_WriterSettings(t *testing.T) {
	p := NewPublisher([]string{"b1:9092", "b2:9092"}, "portal.activity")

	assert.Equal(t, "portal.activity", p.writer.Topic)
	assert.Equal(t, kafka.RequireAll, p.writer.RequiredAcks)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
}

func TestPublisher_NilIsNoop(t *testing.T) {
	var p *Publisher

	assert.NoError(t, p.Publish(context.Background(), domain.Activity{Type: domain.ActivityLinkVerified}))
	assert.NoError(t, p.Close())
}
