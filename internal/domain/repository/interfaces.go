package repository

import (
	"context"
	"errors"
	"time"

	"FinDoc/internal/domain/models"
)

// ErrSymbolNotFound is returned by a DataSource when the provider does not know the symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// DataSource retrieves provider-shaped market data for one symbol.
// Implementations own network I/O, timeouts and cancellation; every failure is a plain error.
type DataSource interface {
	Overview(ctx context.Context, symbol string) (models.Record, error)
	TradingSnapshot(ctx context.Context, symbol string) (models.Record, error)
	Statements(ctx context.Context, symbol string) (models.Statements, error)
	TimeSeries(ctx context.Context, symbol string, period Period, interval Interval) ([]models.SeriesRow, error)
	Earnings(ctx context.Context, symbol string) (models.Earnings, error)
	Dividends(ctx context.Context, symbol string) (models.Dividends, error)
	Recommendations(ctx context.Context, symbol string) (models.Analyst, error)
	Holders(ctx context.Context, symbol string) (models.Holders, error)
	Options(ctx context.Context, symbol string) ([]time.Time, error)
	OptionChain(ctx context.Context, symbol string, expiration time.Time) (models.OptionChain, error)
	News(ctx context.Context, symbol string) ([]models.Record, error)
}

// DocumentPublisher forwards finished documents to downstream consumers.
type DocumentPublisher interface {
	Publish(ctx context.Context, kind string, env *models.Envelope) error
	Close() error
}

// Metrics records service-level measurements.
type Metrics interface {
	RecordDocument(kind string, success bool)
	RecordSectionFailure(section string)
	RecordLatency(op string, seconds float64)
}
