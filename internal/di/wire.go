//go:build wireinject
// +build wireinject

package di

import (
	"FinDoc/pkg/config"
	"FinDoc/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideCache,
		ProvideDataSource,

		// Repositories
		ProvideDocumentPublisher,

		// Use cases
		ProvideNormalizer,
		ProvideDocuments,

		// Transport
		ProvideRateLimiter,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
