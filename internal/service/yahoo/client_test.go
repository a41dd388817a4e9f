package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	domrepo "FinDoc/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteSummaryAAPL = `{"quoteSummary":{"result":[{
  "price":{"longName":"Apple Inc.","regularMarketPrice":{"raw":190.5,"fmt":"190.50"},"currency":"USD","exchange":"NMS"},
  "assetProfile":{"sector":"Technology","fullTimeEmployees":161000,"companyOfficers":[{"name":"Tim Cook","title":"CEO","totalPay":{"raw":16425933,"fmt":"16.43M"}}]},
  "summaryDetail":{"dividendRate":{"raw":0.96,"fmt":"0.96"},"fiftyTwoWeekLow":{"raw":124.17},"fiftyTwoWeekHigh":{"raw":199.62},"bid":{}},
  "financialData":{"currentPrice":{"raw":190.4},"targetHighPrice":{"raw":250}},
  "incomeStatementHistory":{"incomeStatementHistory":[
    {"endDate":{"raw":1696032000,"fmt":"2023-09-30"},"totalRevenue":{"raw":383285000000},"netIncome":{"raw":96995000000},"maxAge":1},
    {"endDate":{"raw":1664496000,"fmt":"2022-09-30"},"totalRevenue":{"raw":394328000000},"netIncome":{}}
  ]},
  "upgradeDowngradeHistory":{"history":[
    {"epochGradeDate":1700000000,"firm":"Newest","toGrade":"Buy","fromGrade":"","action":"main"},
    {"epochGradeDate":1600000000,"firm":"Oldest","toGrade":"Hold","fromGrade":"","action":"init"}
  ]},
  "earningsTrend":{"trend":[{"period":"0q","earningsEstimate":{"avg":{"raw":2.1},"low":{"raw":1.9},"earningsCurrency":"USD"}}]},
  "institutionOwnership":{"ownershipList":[{"organization":"Vanguard","pctHeld":{"raw":0.083},"position":{"raw":1300000000},"reportDate":{"raw":1703980800}}]}
}],"error":null}}`

const chartAAPL = `{"chart":{"result":[{
  "timestamp":[1704153600,1704240000],
  "indicators":{"quote":[{"open":[187.149994,null],"high":[188.44,185.88],"low":[183.89,183.43],"close":[185.639999,184.25],"volume":[82488700,58414500]}]},
  "events":{"dividends":{"1704240000":{"amount":0.24,"date":1704240000}}}
}],"error":null}}`

const optionsAAPL = `{"optionChain":{"result":[{
  "expirationDates":[1706227200,1705622400],
  "options":[{"expirationDate":1705622400,"calls":[{"contractSymbol":"AAPL240119C00100000","strike":100}],"puts":[]}]
}],"error":null}}`

const searchAAPL = `{"news":[{"title":"Apple beats","publisher":"Reuters","providerPublishTime":1700000000}]}`

func newServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var crumbCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/v1/test/getcrumb", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&crumbCalls, 1)
		if _, err := r.Cookie("A3"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("crumb123"))
	})
	mux.HandleFunc("/v10/finance/quoteSummary/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("crumb") != "crumb123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/ZZZZ") {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Not Found","description":"Quote not found for symbol: ZZZZ"}}}`))
			return
		}
		_, _ = w.Write([]byte(quoteSummaryAAPL))
	})
	mux.HandleFunc("/v8/finance/chart/AAPL", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "div,split", r.URL.Query().Get("events"))
		_, _ = w.Write([]byte(chartAAPL))
	})
	mux.HandleFunc("/v7/finance/options/AAPL", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(optionsAAPL))
	})
	mux.HandleFunc("/v1/finance/search", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(searchAAPL))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &crumbCalls
}

func newClient(srv *httptest.Server) *Client {
	return New(Config{BaseURL: srv.URL, CookieURL: srv.URL + "/cookie", Timeout: 5 * time.Second}, nil)
}

func TestOverview_UnwrapsAndMerges(t *testing.T) {
	srv, crumbCalls := newServer(t)
	c := newClient(srv)

	info, err := c.Overview(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "Apple Inc.", info["longName"])
	assert.Equal(t, 190.5, info["regularMarketPrice"])
	assert.Equal(t, 190.4, info["currentPrice"])
	assert.Equal(t, 0.96, info["dividendRate"])
	assert.Nil(t, info["bid"])
	officers := info["companyOfficers"].([]any)
	require.Len(t, officers, 1)
	assert.Equal(t, 16425933.0, officers[0].(map[string]any)["totalPay"])

	_, err = c.Overview(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(crumbCalls))
}

func TestOverview_UnknownSymbol(t *testing.T) {
	srv, _ := newServer(t)
	c := newClient(srv)

	_, err := c.Overview(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domrepo.ErrSymbolNotFound))
}

func TestStatements_BuildsTables(t *testing.T) {
	srv, _ := newServer(t)
	c := newClient(srv)

	st, err := c.Statements(context.Background(), "AAPL")
	require.NoError(t, err)

	inc := st.Income
	assert.Equal(t, []string{"netIncome", "totalRevenue"}, inc.Rows)
	require.Len(t, inc.Columns, 2)
	assert.Equal(t, time.Date(2023, 9, 30, 0, 0, 0, 0, time.UTC), inc.Columns[0])
	assert.Nil(t, inc.Cells[0][1])
	assert.Equal(t, 383285000000.0, inc.Cells[1][0])
	assert.True(t, st.Balance.IsEmpty())
}

func TestTimeSeries(t *testing.T) {
	srv, _ := newServer(t)
	c := newClient(srv)

	rows, err := c.TimeSeries(context.Background(), "AAPL", domrepo.Period1mo, domrepo.Interval1d)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01-02", rows[0].Time.Format("2006-01-02"))
	assert.InDelta(t, 187.149994, rows[0].Open.Float64, 1e-9)
	assert.False(t, rows[1].Open.Valid)
	assert.Equal(t, 0.0, rows[0].Dividends.Float64)
	assert.Equal(t, 0.24, rows[1].Dividends.Float64)
	assert.Equal(t, 82488700.0, rows[0].Volume.Float64)
}

func TestDividends(t *testing.T) {
	srv, _ := newServer(t)
	c := newClient(srv)

	d, err := c.Dividends(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 0.96, d.Facts["dividendRate"])
	require.Len(t, d.History, 1)
	assert.Equal(t, 0.24, d.History[0].Amount.Float64)
}

func TestRecommendations_OldestFirst(t *testing.T) {
	srv, _ := newServer(t)
	c := newClient(srv)

	a, err := c.Recommendations(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, a.Recommendations, 2)
	assert.Equal(t, "Oldest", a.Recommendations[0]["firm"])
	assert.Equal(t, 250.0, a.PriceTargets["targetHighPrice"])
	assert.Equal(t, []string{"avg", "low"}, a.EarningsEstimate.Rows)
	assert.Equal(t, []any{"0q"}, a.EarningsEstimate.Columns)
}

func TestHolders(t *testing.T) {
	srv, _ := newServer(t)
	c := newClient(srv)

	h, err := c.Holders(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, h.Institutional, 1)
	assert.Equal(t, "Vanguard", h.Institutional[0]["organization"])
	assert.Equal(t, 0.083, h.Institutional[0]["pctHeld"])
	assert.Empty(t, h.MutualFund)
}

func TestOptions(t *testing.T) {
	srv, _ := newServer(t)
	c := newClient(srv)

	exps, err := c.Options(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, exps, 2)
	assert.True(t, exps[0].Before(exps[1]))

	chain, err := c.OptionChain(context.Background(), "AAPL", exps[0])
	require.NoError(t, err)
	require.Len(t, chain.Calls, 1)
	assert.Equal(t, 100.0, chain.Calls[0]["strike"])
	assert.Empty(t, chain.Puts)
}

func TestNews(t *testing.T) {
	srv, _ := newServer(t)
	c := newClient(srv)

	items, err := c.News(context.Background(), "AAPL")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Apple beats", items[0]["title"])
}

func TestUnwrap(t *testing.T) {
	in := map[string]any{
		"a": map[string]any{"raw": 1.5, "fmt": "1.50"},
		"b": map[string]any{},
		"c": []any{map[string]any{"raw": 2.0}},
		"d": "x",
	}
	got := unwrap(in).(map[string]any)
	assert.Equal(t, 1.5, got["a"])
	assert.Nil(t, got["b"])
	assert.Equal(t, []any{2.0}, got["c"])
	assert.Equal(t, "x", got["d"])
}
