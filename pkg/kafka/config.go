package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// ProducerOption configures Producer.
type ProducerOption func(*ProducerConfig)

// ProducerConfig holds producer configuration.
// Zero or negative settings keep the defaults from defaultProducerConfig.
type ProducerConfig struct {
	Brokers         []string
	Delivery        Delivery
	Batching        Batching
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	Async           bool
	AutoCreateTopic bool
}

// Delivery controls acknowledgement, retries and compression.
type Delivery struct {
	RequiredAcks int // -1 all replicas, 0 none, 1 leader
	MaxAttempts  int
	Compression  string
}

// Batching controls how messages are grouped per write.
type Batching struct {
	Size   int
	Bytes  int
	Linger time.Duration
}

func defaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Delivery:     Delivery{RequiredAcks: -1, MaxAttempts: 3, Compression: "gzip"},
		Batching:     Batching{Size: 100, Bytes: 1 << 20, Linger: time.Second},
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
}

// WithBrokers sets the bootstrap brokers.
func WithBrokers(brokers []string) ProducerOption {
	return func(c *ProducerConfig) { c.Brokers = brokers }
}

// WithDelivery overrides the non-zero delivery settings.
func WithDelivery(d Delivery) ProducerOption {
	return func(c *ProducerConfig) {
		if d.RequiredAcks >= -1 && d.RequiredAcks <= 1 {
			c.Delivery.RequiredAcks = d.RequiredAcks
		}
		if d.MaxAttempts > 0 {
			c.Delivery.MaxAttempts = d.MaxAttempts
		}
		if d.Compression != "" {
			c.Delivery.Compression = d.Compression
		}
	}
}

// WithBatching overrides the non-zero batching settings.
func WithBatching(b Batching) ProducerOption {
	return func(c *ProducerConfig) {
		if b.Size > 0 {
			c.Batching.Size = b.Size
		}
		if b.Bytes > 0 {
			c.Batching.Bytes = b.Bytes
		}
		if b.Linger > 0 {
			c.Batching.Linger = b.Linger
		}
	}
}

// WithTimeouts sets writer write/read timeouts.
func WithTimeouts(write, read time.Duration) ProducerOption {
	return func(c *ProducerConfig) {
		if write > 0 {
			c.WriteTimeout = write
		}
		if read > 0 {
			c.ReadTimeout = read
		}
	}
}

// WithAsync makes writes fire-and-forget.
func WithAsync(async bool) ProducerOption {
	return func(c *ProducerConfig) { c.Async = async }
}

// WithAutoCreateTopic lets the writer create missing topics on first write.
func WithAutoCreateTopic(enabled bool) ProducerOption {
	return func(c *ProducerConfig) { c.AutoCreateTopic = enabled }
}

// newWriter builds the kafka-go writer. Keyed messages are hashed so one
// symbol always lands on one partition; unkeyed ones are spread round-robin.
func newWriter(cfg *ProducerConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequiredAcks(cfg.Delivery.RequiredAcks),
		Compression:            parseCompression(cfg.Delivery.Compression),
		MaxAttempts:            cfg.Delivery.MaxAttempts,
		WriteTimeout:           cfg.WriteTimeout,
		ReadTimeout:            cfg.ReadTimeout,
		BatchSize:              cfg.Batching.Size,
		BatchBytes:             int64(cfg.Batching.Bytes),
		BatchTimeout:           cfg.Batching.Linger,
		Async:                  cfg.Async,
		AllowAutoTopicCreation: cfg.AutoCreateTopic,
	}
}
