package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"FinDoc/internal/domain/models"
	domrepo "FinDoc/internal/domain/repository"

	"github.com/guregu/null/v6"
)

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []map[string]any `json:"result"`
		Error  *apiError        `json:"error"`
	} `json:"quoteSummary"`
}

// quoteSummary fetches the named modules for symbol.
func (c *Client) quoteSummary(ctx context.Context, symbol string, modules ...string) (map[string]any, error) {
	var resp quoteSummaryResponse
	path := "/v10/finance/quoteSummary/" + url.PathEscape(symbol)
	query := map[string][]string{"modules": {strings.Join(modules, ",")}}
	if err := c.get(ctx, path, query, true, &resp); err != nil {
		return nil, err
	}
	if e := resp.QuoteSummary.Error; e != nil {
		if isNotFound(e.Code) {
			return nil, fmt.Errorf("%w: %s", domrepo.ErrSymbolNotFound, symbol)
		}
		return nil, fmt.Errorf("yahoo quoteSummary %s: %s", e.Code, e.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", domrepo.ErrSymbolNotFound, symbol)
	}
	return resp.QuoteSummary.Result[0], nil
}

// flatInfo merges modules into one record, earlier modules winning.
func flatInfo(result map[string]any, modules ...string) models.Record {
	info := models.Record{}
	for _, m := range modules {
		merge(info, record(result[m]))
	}
	return info
}

var overviewModules = []string{
	"price", "assetProfile", "summaryDetail", "defaultKeyStatistics", "financialData", "quoteType",
}

// Overview resolves symbol and returns the flat info record.
func (c *Client) Overview(ctx context.Context, symbol string) (models.Record, error) {
	res, err := c.quoteSummary(ctx, symbol, overviewModules...)
	if err != nil {
		return nil, err
	}
	info := flatInfo(res, overviewModules...)
	if info["regularMarketPrice"] != nil && info["currentPrice"] == nil {
		info["currentPrice"] = info["regularMarketPrice"]
	}
	return info, nil
}

func (c *Client) TradingSnapshot(ctx context.Context, symbol string) (models.Record, error) {
	res, err := c.quoteSummary(ctx, symbol, "price", "summaryDetail", "quoteType")
	if err != nil {
		return nil, err
	}
	snap := flatInfo(res, "summaryDetail", "price", "quoteType")
	if tz, ok := snap["timeZoneFullName"]; ok && snap["exchangeTimezoneName"] == nil {
		snap["exchangeTimezoneName"] = tz
	}
	return snap, nil
}

func (c *Client) Statements(ctx context.Context, symbol string) (models.Statements, error) {
	res, err := c.quoteSummary(ctx, symbol,
		"incomeStatementHistory", "incomeStatementHistoryQuarterly",
		"balanceSheetHistory", "balanceSheetHistoryQuarterly",
		"cashflowStatementHistory", "cashflowStatementHistoryQuarterly",
	)
	if err != nil {
		return models.Statements{}, err
	}
	pick := func(module, list string) models.RawTable {
		return statementTable(record(res[module])[list])
	}
	return models.Statements{
		Income:            pick("incomeStatementHistory", "incomeStatementHistory"),
		QuarterlyIncome:   pick("incomeStatementHistoryQuarterly", "incomeStatementHistory"),
		Balance:           pick("balanceSheetHistory", "balanceSheetStatements"),
		QuarterlyBalance:  pick("balanceSheetHistoryQuarterly", "balanceSheetStatements"),
		CashFlow:          pick("cashflowStatementHistory", "cashflowStatements"),
		QuarterlyCashFlow: pick("cashflowStatementHistoryQuarterly", "cashflowStatements"),
	}, nil
}

func (c *Client) TimeSeries(ctx context.Context, symbol string, period domrepo.Period, interval domrepo.Interval) ([]models.SeriesRow, error) {
	ch, err := c.chart(ctx, symbol, string(domrepo.NormalizePeriod(string(period))), string(domrepo.NormalizeInterval(string(interval))))
	if err != nil {
		return nil, err
	}
	return ch.rows(), nil
}

func (c *Client) Earnings(ctx context.Context, symbol string) (models.Earnings, error) {
	res, err := c.quoteSummary(ctx, symbol, "earnings", "calendarEvents")
	if err != nil {
		return models.Earnings{}, err
	}
	earnings := record(res["earnings"])
	financials, _ := earnings["financialsChart"].(map[string]any)
	metrics := map[string]string{"earnings": "Earnings", "revenue": "Revenue"}

	var out models.Earnings
	if financials != nil {
		out.Quarterly = seriesTable(records(financials["quarterly"]), "date", metrics)
		out.Yearly = seriesTable(records(financials["yearly"]), "date", metrics)
	}
	calendar := record(res["calendarEvents"])
	if e, ok := calendar["earnings"].(map[string]any); ok {
		out.Calendar = models.Record(e)
	}
	return out, nil
}

func (c *Client) Dividends(ctx context.Context, symbol string) (models.Dividends, error) {
	res, err := c.quoteSummary(ctx, symbol, "summaryDetail")
	if err != nil {
		return models.Dividends{}, err
	}
	ch, err := c.chart(ctx, symbol, string(domrepo.PeriodMax), string(domrepo.Interval1mo))
	if err != nil {
		return models.Dividends{}, err
	}
	return models.Dividends{
		Facts:   record(res["summaryDetail"]),
		History: ch.dividends(),
	}, nil
}

func (c *Client) Recommendations(ctx context.Context, symbol string) (models.Analyst, error) {
	res, err := c.quoteSummary(ctx, symbol, "upgradeDowngradeHistory", "financialData", "earningsTrend")
	if err != nil {
		return models.Analyst{}, err
	}

	// newest first upstream; callers expect oldest first
	history := records(record(res["upgradeDowngradeHistory"])["history"])
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}

	trend := records(record(res["earningsTrend"])["trend"])
	return models.Analyst{
		Recommendations:  history,
		PriceTargets:     record(res["financialData"]),
		EarningsEstimate: estimateTable(trend, "earningsEstimate"),
		RevenueEstimate:  estimateTable(trend, "revenueEstimate"),
	}, nil
}

func (c *Client) Holders(ctx context.Context, symbol string) (models.Holders, error) {
	res, err := c.quoteSummary(ctx, symbol, "majorHoldersBreakdown", "institutionOwnership", "fundOwnership")
	if err != nil {
		return models.Holders{}, err
	}
	return models.Holders{
		Major:         record(res["majorHoldersBreakdown"]),
		Institutional: records(record(res["institutionOwnership"])["ownershipList"]),
		MutualFund:    records(record(res["fundOwnership"])["ownershipList"]),
	}, nil
}

type optionsResponse struct {
	OptionChain struct {
		Result []struct {
			ExpirationDates []int64 `json:"expirationDates"`
			Options         []struct {
				ExpirationDate int64            `json:"expirationDate"`
				Calls          []map[string]any `json:"calls"`
				Puts           []map[string]any `json:"puts"`
			} `json:"options"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"optionChain"`
}

func (c *Client) options(ctx context.Context, symbol string, date int64) (*optionsResponse, error) {
	var resp optionsResponse
	var query map[string][]string
	if date > 0 {
		query = map[string][]string{"date": {strconv.FormatInt(date, 10)}}
	}
	if err := c.get(ctx, "/v7/finance/options/"+url.PathEscape(symbol), query, true, &resp); err != nil {
		return nil, err
	}
	if e := resp.OptionChain.Error; e != nil {
		if isNotFound(e.Code) {
			return nil, fmt.Errorf("%w: %s", domrepo.ErrSymbolNotFound, symbol)
		}
		return nil, fmt.Errorf("yahoo options %s: %s", e.Code, e.Description)
	}
	if len(resp.OptionChain.Result) == 0 {
		return nil, errors.New("yahoo options: empty result")
	}
	return &resp, nil
}

func (c *Client) Options(ctx context.Context, symbol string) ([]time.Time, error) {
	resp, err := c.options(ctx, symbol, 0)
	if err != nil {
		return nil, err
	}
	dates := resp.OptionChain.Result[0].ExpirationDates
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		out = append(out, time.Unix(d, 0).UTC())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (c *Client) OptionChain(ctx context.Context, symbol string, expiration time.Time) (models.OptionChain, error) {
	resp, err := c.options(ctx, symbol, expiration.Unix())
	if err != nil {
		return models.OptionChain{}, err
	}
	out := models.OptionChain{Expiration: expiration}
	opts := resp.OptionChain.Result[0].Options
	if len(opts) == 0 {
		return out, nil
	}
	for _, call := range opts[0].Calls {
		out.Calls = append(out.Calls, record(call))
	}
	for _, put := range opts[0].Puts {
		out.Puts = append(out.Puts, record(put))
	}
	return out, nil
}

type searchResponse struct {
	News []map[string]any `json:"news"`
}

func (c *Client) News(ctx context.Context, symbol string) ([]models.Record, error) {
	var resp searchResponse
	query := map[string][]string{
		"q":           {symbol},
		"quotesCount": {"0"},
		"newsCount":   {"10"},
	}
	if err := c.get(ctx, "/v1/finance/search", query, false, &resp); err != nil {
		return nil, err
	}
	out := make([]models.Record, 0, len(resp.News))
	for _, n := range resp.News {
		out = append(out, models.Record(n))
	}
	return out, nil
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
	Events struct {
		Dividends map[string]struct {
			Amount float64 `json:"amount"`
			Date   int64   `json:"date"`
		} `json:"dividends"`
		Splits map[string]struct {
			Date        int64   `json:"date"`
			Numerator   float64 `json:"numerator"`
			Denominator float64 `json:"denominator"`
		} `json:"splits"`
	} `json:"events"`
}

func (c *Client) chart(ctx context.Context, symbol, rng, interval string) (*chartResult, error) {
	var resp chartResponse
	query := map[string][]string{
		"range":    {rng},
		"interval": {interval},
		"events":   {"div,split"},
	}
	if err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query, false, &resp); err != nil {
		return nil, err
	}
	if e := resp.Chart.Error; e != nil {
		if isNotFound(e.Code) {
			return nil, fmt.Errorf("%w: %s", domrepo.ErrSymbolNotFound, symbol)
		}
		return nil, fmt.Errorf("yahoo chart %s: %s", e.Code, e.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return &chartResult{}, nil
	}
	return &resp.Chart.Result[0], nil
}

func at(xs []*float64, i int) null.Float {
	if i >= len(xs) || xs[i] == nil {
		return null.Float{}
	}
	return null.FloatFrom(*xs[i])
}

// rows builds bars in timestamp order with dividends and splits joined by timestamp.
func (r *chartResult) rows() []models.SeriesRow {
	divs := map[int64]float64{}
	for _, d := range r.Events.Dividends {
		divs[d.Date] = d.Amount
	}
	splits := map[int64]float64{}
	for _, s := range r.Events.Splits {
		if s.Denominator != 0 {
			splits[s.Date] = s.Numerator / s.Denominator
		}
	}

	out := make([]models.SeriesRow, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		row := models.SeriesRow{
			Time:        time.Unix(ts, 0).UTC(),
			Dividends:   null.FloatFrom(divs[ts]),
			StockSplits: null.FloatFrom(splits[ts]),
		}
		if len(r.Indicators.Quote) > 0 {
			q := r.Indicators.Quote[0]
			row.Open, row.High, row.Low, row.Close, row.Volume = at(q.Open, i), at(q.High, i), at(q.Low, i), at(q.Close, i), at(q.Volume, i)
		}
		out = append(out, row)
	}
	return out
}

func (r *chartResult) dividends() []models.DatedValue {
	out := make([]models.DatedValue, 0, len(r.Events.Dividends))
	for _, d := range r.Events.Dividends {
		out = append(out, models.DatedValue{Time: time.Unix(d.Date, 0).UTC(), Amount: null.FloatFrom(d.Amount)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}
