package repository

import (
	"context"
	"time"

	"FinDoc/internal/domain/models"
	"FinDoc/internal/domain/repository"
	pkgkafka "FinDoc/pkg/kafka"
)

// DocumentEvent is the Kafka payload for one finished document.
type DocumentEvent struct {
	Kind        string           `json:"kind"`
	Symbol      string           `json:"symbol"`
	PublishedAt time.Time        `json:"publishedAt"`
	Document    *models.Envelope `json:"document"`
}

// producer is the part of pkg/kafka.Producer used here.
type producer interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaPublisher implements DocumentPublisher for Kafka. Messages are keyed by symbol.
type KafkaPublisher struct {
	producer producer
	topic    string
	now      func() time.Time
}

var _ repository.DocumentPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(p *pkgkafka.Producer, topic string) *KafkaPublisher {
	return newKafkaPublisher(p, topic)
}

func newKafkaPublisher(p producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: p, topic: topic, now: time.Now}
}

func (p *KafkaPublisher) Publish(ctx context.Context, kind string, env *models.Envelope) error {
	if env == nil {
		return nil
	}
	return p.producer.Publish(ctx, p.topic, []byte(env.Symbol), DocumentEvent{
		Kind:        kind,
		Symbol:      env.Symbol,
		PublishedAt: p.now().UTC(),
		Document:    env,
	})
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
