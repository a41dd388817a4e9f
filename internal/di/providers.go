package di

import (
	"fmt"

	"FinDoc/internal/domain/repository"
	"FinDoc/internal/handler/api"
	internalrepo "FinDoc/internal/repository"
	upstream "FinDoc/internal/service/metrics"
	"FinDoc/internal/service/ratelimit"
	"FinDoc/internal/service/yahoo"
	"FinDoc/internal/services/normalize"
	"FinDoc/internal/usecase"
	"FinDoc/pkg/cache"
	"FinDoc/pkg/config"
	"FinDoc/pkg/http/middleware"
	pkgkafka "FinDoc/pkg/kafka"
	applogger "FinDoc/pkg/logger"
	"FinDoc/pkg/metrics"
	"FinDoc/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l.With(applogger.String("service", cfg.Service)), nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	upstream.Register()
	return metrics.New()
}

// ProvideDataSource creates the Yahoo Finance adapter.
func ProvideDataSource(cfg *config.Config, l *applogger.Logger) repository.DataSource {
	return yahoo.New(yahoo.Config{
		BaseURL:   cfg.Yahoo.BaseURL,
		CookieURL: cfg.Yahoo.CookieURL,
		UserAgent: cfg.Yahoo.UserAgent,
		Timeout:   cfg.Yahoo.Timeout,
	}, l.With(applogger.String("component", "yahoo")))
}

// ProvideNormalizer creates the table/series/entity normalizer.
func ProvideNormalizer(l *applogger.Logger) *normalize.Normalizer {
	return normalize.New(l.With(applogger.String("component", "normalize")))
}

// ProvideKafkaProducer creates a Kafka producer. It returns nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithDelivery(pkgkafka.Delivery{
			RequiredAcks: cfg.Kafka.RequiredAcks,
			MaxAttempts:  cfg.Kafka.Producer.MaxAttempts,
			Compression:  cfg.Kafka.Compression,
		}),
		pkgkafka.WithBatching(pkgkafka.Batching{
			Size:   cfg.Kafka.Producer.BatchSize,
			Bytes:  cfg.Kafka.Producer.BatchBytes,
			Linger: cfg.Kafka.Producer.Linger,
		}),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithAutoCreateTopic(cfg.Kafka.AutoCreate),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideDocumentPublisher publishes finished documents to Kafka, or nothing when disabled.
func ProvideDocumentPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.DocumentPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Kafka.Topic)
}

// ProvideCache creates the document cache. It returns nil when caching is disabled.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	r := cfg.Cache.Redis
	svc, err := cache.New(cache.Config{
		Backend:       cfg.Cache.Backend,
		TTL:           cfg.Cache.TTL,
		MemoryMaxSize: cfg.Cache.MemoryMaxSize,
		Redis: cache.RedisConfig{
			Addr:     r.Addr,
			Password: r.Password,
			DB:       r.DB,
			PoolSize: r.PoolSize,
			Prefix:   r.Prefix,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	return svc, nil
}

// ProvideDocuments builds the document aggregator, wrapped by the cache when one is configured.
func ProvideDocuments(
	cfg *config.Config,
	src repository.DataSource,
	norm *normalize.Normalizer,
	m repository.Metrics,
	pub repository.DocumentPublisher,
	c cache.Service,
	l *applogger.Logger,
) usecase.Documents {
	var docs usecase.Documents = usecase.NewDocumentUseCase(src, norm, m, pub, l, cfg.Aggregator.Timeout)
	if c != nil {
		docs = usecase.NewCachedDocuments(docs, c, cfg.Cache.TTL, l)
	}
	return docs
}

// ProvideRateLimiter returns the per-client limiter, or nil when rate limiting is off.
func ProvideRateLimiter(cfg *config.Config) middleware.Limiter {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	return ratelimit.New(cfg.RateLimit.Capacity, cfg.RateLimit.RefillPerSec)
}

// ProvideHTTPHandler creates the document routes.
func ProvideHTTPHandler(cfg *config.Config, l *applogger.Logger, docs usecase.Documents) *api.DocumentsEchoHandler {
	return api.NewDocumentsEchoHandler(l, docs, cfg.Service, cfg.Version)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	h *api.DocumentsEchoHandler,
	limiter middleware.Limiter,
	producer *pkgkafka.Producer,
	c cache.Service,
) *server.App {
	if producer != nil && cfg.Kafka.LogTopic != "" {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   cfg.Kafka.LogFlushInterval,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogTopic,
			Publisher:      producer,
		})
	}
	return server.New(cfg, l, h, limiter, producer, c)
}
