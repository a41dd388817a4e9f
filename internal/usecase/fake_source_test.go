package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"FinDoc/internal/domain/models"
	domrepo "FinDoc/internal/domain/repository"

	"github.com/guregu/null/v6"
)

var errUpstream = errors.New("upstream unavailable")

// fakeSource serves canned provider data. Methods named in fail return errUpstream.
type fakeSource struct {
	mu       sync.Mutex
	fail     map[string]bool
	panicOn  string
	calls    map[string]int
	unknown  map[string]bool
	noOption bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{fail: map[string]bool{}, calls: map[string]int{}, unknown: map[string]bool{"ZZZZ": true}}
}

func (f *fakeSource) hit(op string) error {
	f.mu.Lock()
	f.calls[op]++
	fail := f.fail[op]
	f.mu.Unlock()
	if f.panicOn == op {
		panic("boom in " + op)
	}
	if fail {
		return errUpstream
	}
	return nil
}

func (f *fakeSource) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeSource) Overview(_ context.Context, symbol string) (models.Record, error) {
	if err := f.hit("overview"); err != nil {
		return nil, err
	}
	if f.unknown[symbol] {
		return nil, domrepo.ErrSymbolNotFound
	}
	return models.Record{
		"longName":          "Apple Inc.",
		"sector":            "Technology",
		"currentPrice":      190.5,
		"marketCap":         2950000000000.0,
		"trailingPE":        31.2,
		"trailingEps":       6.1,
		"dividendYield":     0.005,
		"fiftyTwoWeekLow":   124.17,
		"fiftyTwoWeekHigh":  199.62,
		"totalRevenue":      383000000000.0,
		"profitMargins":     0.25,
		"recommendationKey": "buy",
		"companyOfficers": []any{
			map[string]any{"name": "Tim Cook", "title": "CEO"},
		},
	}, nil
}

func (f *fakeSource) TradingSnapshot(context.Context, string) (models.Record, error) {
	if err := f.hit("trading"); err != nil {
		return nil, err
	}
	return models.Record{"regularMarketPrice": 190.5, "exchange": "NMS"}, nil
}

func (f *fakeSource) Statements(context.Context, string) (models.Statements, error) {
	if err := f.hit("statements"); err != nil {
		return models.Statements{}, err
	}
	return models.Statements{
		Income: models.RawTable{
			Rows:    []string{"Total Revenue"},
			Columns: []any{time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC)},
			Cells:   [][]any{{383285000000.0}},
		},
	}, nil
}

func (f *fakeSource) TimeSeries(context.Context, string, domrepo.Period, domrepo.Interval) ([]models.SeriesRow, error) {
	if err := f.hit("series"); err != nil {
		return nil, err
	}
	return []models.SeriesRow{{
		Time:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Open:   null.FloatFrom(187.149994),
		Close:  null.FloatFrom(185.639999),
		Volume: null.FloatFrom(82488700),
	}}, nil
}

func (f *fakeSource) Earnings(context.Context, string) (models.Earnings, error) {
	if err := f.hit("earnings"); err != nil {
		return models.Earnings{}, err
	}
	return models.Earnings{Calendar: models.Record{"earningsDate": []any{1706745600.0}}}, nil
}

func (f *fakeSource) Dividends(context.Context, string) (models.Dividends, error) {
	if err := f.hit("dividends"); err != nil {
		return models.Dividends{}, err
	}
	return models.Dividends{
		Facts:   models.Record{"dividendRate": 0.96},
		History: []models.DatedValue{{Time: time.Date(2023, 11, 10, 0, 0, 0, 0, time.UTC), Amount: null.FloatFrom(0.24)}},
	}, nil
}

func (f *fakeSource) Recommendations(context.Context, string) (models.Analyst, error) {
	if err := f.hit("recommendations"); err != nil {
		return models.Analyst{}, err
	}
	return models.Analyst{Recommendations: []models.Record{{"firm": "Morgan Stanley", "toGrade": "Overweight"}}}, nil
}

func (f *fakeSource) Holders(context.Context, string) (models.Holders, error) {
	if err := f.hit("holders"); err != nil {
		return models.Holders{}, err
	}
	return models.Holders{Institutional: []models.Record{{"organization": "Vanguard"}}}, nil
}

func (f *fakeSource) Options(context.Context, string) ([]time.Time, error) {
	if err := f.hit("options"); err != nil {
		return nil, err
	}
	if f.noOption {
		return nil, nil
	}
	return []time.Time{
		time.Date(2024, 1, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeSource) OptionChain(_ context.Context, _ string, exp time.Time) (models.OptionChain, error) {
	if err := f.hit("chain"); err != nil {
		return models.OptionChain{}, err
	}
	return models.OptionChain{
		Expiration: exp,
		Calls:      []models.Record{{"contractSymbol": "AAPL240119C00100000", "strike": 100.0}},
	}, nil
}

func (f *fakeSource) News(context.Context, string) ([]models.Record, error) {
	if err := f.hit("news"); err != nil {
		return nil, err
	}
	return []models.Record{{"title": "Apple news", "providerPublishTime": 1700000000.0}}, nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	docs     map[string]int
	failures map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{docs: map[string]int{}, failures: map[string]int{}}
}

func (m *fakeMetrics) RecordDocument(kind string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.docs[kind]++
	}
}

func (m *fakeMetrics) RecordSectionFailure(section string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[section]++
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

type fakePublisher struct {
	mu   sync.Mutex
	envs []*models.Envelope
	err  error
}

func (p *fakePublisher) Publish(_ context.Context, _ string, env *models.Envelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.envs = append(p.envs, env)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }
