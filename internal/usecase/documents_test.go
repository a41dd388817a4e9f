package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"FinDoc/internal/domain/models"
	domrepo "FinDoc/internal/domain/repository"
	"FinDoc/internal/services/normalize"
	applogger "FinDoc/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUseCase(src domrepo.DataSource, m domrepo.Metrics, pub domrepo.DocumentPublisher, log *applogger.Logger) *DocumentUseCase {
	return NewDocumentUseCase(src, normalize.New(log), m, pub, log, 5*time.Second)
}

func params(symbol string) DocumentParams {
	return DocumentParams{Symbol: symbol, Period: domrepo.DefaultPeriod(), Interval: domrepo.DefaultInterval()}
}

func TestStock_AllSectionsPresent(t *testing.T) {
	uc := newUseCase(newFakeSource(), nil, nil, nil)

	env := uc.Stock(context.Background(), params("AAPL"))

	require.True(t, env.Success)
	assert.Equal(t, "AAPL", env.Symbol)
	require.NotNil(t, env.Timestamp)
	assert.Len(t, env.Data, 11)
	for _, name := range SectionNames() {
		assert.Contains(t, env.Data, name)
	}

	info := env.Data[SectionCompanyInfo].(models.Record)
	assert.Equal(t, "Apple Inc.", info["name"])
	assert.Len(t, info["officers"], 1)

	history := env.Data[SectionHistoricalData].([]models.TimeSeriesPoint)
	require.Len(t, history, 1)
	assert.Equal(t, 187.15, history[0].Open.Float64)
	assert.Equal(t, int64(82488700), history[0].Volume)

	opts := env.Data[SectionOptions].(models.Record)
	assert.Equal(t, []string{"2024-01-19", "2024-01-26"}, opts["expirationDates"])
}

func TestStock_NewsFailureIsolated(t *testing.T) {
	src := newFakeSource()
	src.fail["news"] = true
	var buf bytes.Buffer
	m := newFakeMetrics()
	uc := newUseCase(src, m, nil, applogger.NewWithWriter(&buf, "debug"))

	env := uc.Stock(context.Background(), params("AAPL"))

	require.True(t, env.Success)
	assert.Equal(t, []any{}, env.Data[SectionNews])
	assert.NotEmpty(t, env.Data[SectionCurrentTrading])
	assert.NotEmpty(t, env.Data[SectionHistoricalData])
	assert.Equal(t, 1, m.failures[SectionNews])
	assert.Contains(t, buf.String(), `"section":"news"`)
	assert.Contains(t, buf.String(), `"symbol":"AAPL"`)

	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"news":[]`)
}

func TestStock_EverySectionFailsStillSucceeds(t *testing.T) {
	src := newFakeSource()
	for _, op := range []string{"trading", "statements", "series", "earnings", "dividends", "recommendations", "holders", "options", "news"} {
		src.fail[op] = true
	}
	uc := newUseCase(src, nil, nil, nil)

	env := uc.Stock(context.Background(), params("AAPL"))

	require.True(t, env.Success)
	assert.Len(t, env.Data, 11)
	assert.Equal(t, models.Record{}, env.Data[SectionFinancialStatements])
	assert.Equal(t, []any{}, env.Data[SectionHistoricalData])
}

func TestStock_PanicInSectionIsRecovered(t *testing.T) {
	src := newFakeSource()
	src.panicOn = "holders"
	m := newFakeMetrics()
	uc := newUseCase(src, m, nil, nil)

	env := uc.Stock(context.Background(), params("AAPL"))

	require.True(t, env.Success)
	assert.Equal(t, models.Record{}, env.Data[SectionInstitutionalHolders])
	assert.Equal(t, 1, m.failures[SectionInstitutionalHolders])
}

func TestStock_ResolutionFailure(t *testing.T) {
	src := newFakeSource()
	uc := newUseCase(src, nil, nil, nil)

	env := uc.Stock(context.Background(), params("ZZZZ"))

	assert.False(t, env.Success)
	assert.Equal(t, "ZZZZ", env.Symbol)
	assert.Equal(t, domrepo.ErrSymbolNotFound.Error(), env.Error)
	assert.Nil(t, env.Data)
	assert.Zero(t, src.count("news"))
	assert.Zero(t, src.count("trading"))

	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"symbol":"ZZZZ","error":"symbol not found"}`, string(b))
}

func TestStock_OptionsWithoutExpirations(t *testing.T) {
	src := newFakeSource()
	src.noOption = true
	uc := newUseCase(src, nil, nil, nil)

	env := uc.Stock(context.Background(), params("AAPL"))

	opts := env.Data[SectionOptions].(models.Record)
	assert.Equal(t, []string{}, opts["expirationDates"])
	assert.Equal(t, models.Record{}, opts["optionsChain"])
	assert.Zero(t, src.count("chain"))
}

func TestSection_SingleSection(t *testing.T) {
	src := newFakeSource()
	uc := newUseCase(src, nil, nil, nil)

	env := uc.Section(context.Background(), KindNews, params("AAPL"))

	require.True(t, env.Success)
	require.Len(t, env.Data, 1)
	news := env.Data[SectionNews].([]models.Record)
	require.Len(t, news, 1)
	assert.Equal(t, "Apple news", news[0]["title"])
	assert.Zero(t, src.count("trading"))
}

func TestSection_UnknownKind(t *testing.T) {
	uc := newUseCase(newFakeSource(), nil, nil, nil)
	env := uc.Section(context.Background(), "bogus", params("AAPL"))
	assert.False(t, env.Success)
}

func TestStock_PublishesSuccessOnly(t *testing.T) {
	pub := &fakePublisher{}
	uc := newUseCase(newFakeSource(), nil, pub, nil)

	uc.Stock(context.Background(), params("AAPL"))
	uc.Stock(context.Background(), params("ZZZZ"))

	require.Len(t, pub.envs, 1)
	assert.Equal(t, "AAPL", pub.envs[0].Symbol)
}

func TestSummary(t *testing.T) {
	m := newFakeMetrics()
	uc := newUseCase(newFakeSource(), m, nil, nil)

	env := uc.Summary(context.Background(), params("AAPL"))

	require.True(t, env.Success)
	assert.Equal(t, "AAPL", env.Symbol)
	s := env.Summary
	assert.Len(t, s, 10)
	assert.Equal(t, "Apple Inc.", s["name"])
	assert.Equal(t, 190.5, s["price"])
	assert.Equal(t, "124.17 - 199.62", s["fiftyTwoWeekRange"])
	assert.Equal(t, "buy", s["recommendation"])
	assert.Equal(t, 1, m.docs[KindSummary])
}

func TestSummary_Failure(t *testing.T) {
	uc := newUseCase(newFakeSource(), nil, nil, nil)

	env := uc.Summary(context.Background(), params("ZZZZ"))

	b, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"symbol not found"}`, string(b))
}

func TestBuildSummary_MissingRange(t *testing.T) {
	s := BuildSummary(models.Record{"fiftyTwoWeekLow": 1.0})
	assert.Nil(t, s["fiftyTwoWeekRange"])
	assert.Nil(t, s["name"])
}

// stallingSource blocks News and TimeSeries until the request context ends.
// A positive overviewDelay makes Overview outlast the deadline without noticing it.
type stallingSource struct {
	*fakeSource
	overviewDelay time.Duration
}

func (s *stallingSource) Overview(ctx context.Context, symbol string) (models.Record, error) {
	time.Sleep(s.overviewDelay)
	return s.fakeSource.Overview(ctx, symbol)
}

func (s *stallingSource) News(ctx context.Context, _ string) ([]models.Record, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *stallingSource) TimeSeries(ctx context.Context, _ string, _ domrepo.Period, _ domrepo.Interval) ([]models.SeriesRow, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStock_DeadlineEmptiesStalledSections(t *testing.T) {
	m := newFakeMetrics()
	uc := NewDocumentUseCase(&stallingSource{fakeSource: newFakeSource()}, normalize.New(nil), m, nil, nil, 50*time.Millisecond)

	start := time.Now()
	env := uc.Stock(context.Background(), params("AAPL"))

	require.True(t, env.Success)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Len(t, env.Data, 11)
	assert.Equal(t, []any{}, env.Data[SectionNews])
	assert.Equal(t, []any{}, env.Data[SectionHistoricalData])
	assert.NotEmpty(t, env.Data[SectionCompanyInfo])
	assert.Equal(t, 1, m.failures[SectionNews])
	assert.Equal(t, 1, m.failures[SectionHistoricalData])
}

func TestStock_DeadlineBeforeSectionsStart(t *testing.T) {
	m := newFakeMetrics()
	src := &stallingSource{fakeSource: newFakeSource(), overviewDelay: 60 * time.Millisecond}
	uc := NewDocumentUseCase(src, normalize.New(nil), m, nil, nil, 20*time.Millisecond)

	env := uc.Stock(context.Background(), params("AAPL"))

	require.True(t, env.Success)
	assert.Len(t, env.Data, 11)
	for _, name := range SectionNames() {
		assert.Equal(t, 1, m.failures[name], name)
	}
	assert.Equal(t, models.Record{}, env.Data[SectionCompanyInfo])
	assert.Equal(t, models.Record{}, env.Data[SectionOptions])
	assert.Equal(t, []any{}, env.Data[SectionNews])
	assert.Equal(t, 0, src.count("trading"))
	assert.Equal(t, 0, src.count("statements"))
}
