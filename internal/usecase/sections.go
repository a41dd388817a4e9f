package usecase

import (
	"context"

	"FinDoc/internal/domain/models"
	domrepo "FinDoc/internal/domain/repository"
	"FinDoc/internal/services/normalize"
)

// Section keys of the full document.
const (
	SectionCompanyInfo            = "companyInfo"
	SectionCurrentTrading         = "currentTrading"
	SectionFinancialStatements    = "financialStatements"
	SectionKeyMetrics             = "keyMetrics"
	SectionEarnings               = "earnings"
	SectionDividends              = "dividends"
	SectionAnalystRecommendations = "analystRecommendations"
	SectionInstitutionalHolders   = "institutionalHolders"
	SectionHistoricalData         = "historicalData"
	SectionOptions                = "options"
	SectionNews                   = "news"
)

type sectionInput struct {
	symbol   string
	period   domrepo.Period
	interval domrepo.Interval
	info     models.Record
}

type section struct {
	name  string
	empty func() any
	build func(uc *DocumentUseCase, ctx context.Context, in sectionInput) (any, error)
}

func emptyObject() any { return models.Record{} }
func emptyList() any   { return []any{} }

var sections = []section{
	{SectionCompanyInfo, emptyObject, (*DocumentUseCase).companyInfo},
	{SectionCurrentTrading, emptyObject, (*DocumentUseCase).currentTrading},
	{SectionFinancialStatements, emptyObject, (*DocumentUseCase).financialStatements},
	{SectionKeyMetrics, emptyObject, (*DocumentUseCase).keyMetrics},
	{SectionEarnings, emptyObject, (*DocumentUseCase).earnings},
	{SectionDividends, emptyObject, (*DocumentUseCase).dividends},
	{SectionAnalystRecommendations, emptyObject, (*DocumentUseCase).analyst},
	{SectionInstitutionalHolders, emptyObject, (*DocumentUseCase).holders},
	{SectionHistoricalData, emptyList, (*DocumentUseCase).history},
	{SectionOptions, emptyObject, (*DocumentUseCase).options},
	{SectionNews, emptyList, (*DocumentUseCase).news},
}

// SectionNames lists the full document's section keys in order.
func SectionNames() []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.name
	}
	return out
}

func sectionByName(name string) section {
	for _, s := range sections {
		if s.name == name {
			return s
		}
	}
	panic("usecase: unknown section " + name)
}

func (uc *DocumentUseCase) companyInfo(_ context.Context, in sectionInput) (any, error) {
	out := normalize.Extract(in.info, normalize.OverviewSchema)
	out["officers"] = uc.norm.Officers(in.info)
	return out, nil
}

func (uc *DocumentUseCase) currentTrading(ctx context.Context, in sectionInput) (any, error) {
	snap, err := uc.src.TradingSnapshot(ctx, in.symbol)
	if err != nil {
		return nil, err
	}
	return normalize.Extract(snap, normalize.TradingSchema), nil
}

func (uc *DocumentUseCase) financialStatements(ctx context.Context, in sectionInput) (any, error) {
	st, err := uc.src.Statements(ctx, in.symbol)
	if err != nil {
		return nil, err
	}
	return models.Record{
		"incomeStatement":          uc.norm.Table(st.Income),
		"quarterlyIncomeStatement": uc.norm.Table(st.QuarterlyIncome),
		"balanceSheet":             uc.norm.Table(st.Balance),
		"quarterlyBalanceSheet":    uc.norm.Table(st.QuarterlyBalance),
		"cashFlow":                 uc.norm.Table(st.CashFlow),
		"quarterlyCashFlow":        uc.norm.Table(st.QuarterlyCashFlow),
	}, nil
}

func (uc *DocumentUseCase) keyMetrics(_ context.Context, in sectionInput) (any, error) {
	return models.Record{
		"valuationMetrics":     normalize.Extract(in.info, normalize.ValuationSchema),
		"profitabilityMetrics": normalize.Extract(in.info, normalize.ProfitabilitySchema),
		"financialHealth":      normalize.Extract(in.info, normalize.FinancialHealthSchema),
		"perShareData":         normalize.Extract(in.info, normalize.PerShareSchema),
	}, nil
}

func (uc *DocumentUseCase) earnings(ctx context.Context, in sectionInput) (any, error) {
	e, err := uc.src.Earnings(ctx, in.symbol)
	if err != nil {
		return nil, err
	}
	calendar := normalize.Extract(e.Calendar, normalize.EarningsCalendarSchema)
	return models.Record{
		"earningsDates":     calendar["earningsDate"],
		"quarterlyEarnings": uc.norm.Table(e.Quarterly),
		"yearlyEarnings":    uc.norm.Table(e.Yearly),
		"calendar":          calendar,
	}, nil
}

func (uc *DocumentUseCase) dividends(ctx context.Context, in sectionInput) (any, error) {
	d, err := uc.src.Dividends(ctx, in.symbol)
	if err != nil {
		return nil, err
	}
	facts := d.Facts
	if facts == nil {
		facts = in.info
	}
	out := normalize.Extract(facts, normalize.DividendFactsSchema)
	out["dividendHistory"] = uc.norm.Dividends(d.History)
	return out, nil
}

func (uc *DocumentUseCase) analyst(ctx context.Context, in sectionInput) (any, error) {
	a, err := uc.src.Recommendations(ctx, in.symbol)
	if err != nil {
		return nil, err
	}
	targets := a.PriceTargets
	if targets == nil {
		targets = in.info
	}
	return models.Record{
		"recommendations":   uc.norm.Recommendations(a.Recommendations),
		"priceTargets":      normalize.Extract(targets, normalize.PriceTargetSchema),
		"earningsEstimates": uc.norm.Table(a.EarningsEstimate),
		"revenueEstimates":  uc.norm.Table(a.RevenueEstimate),
	}, nil
}

func (uc *DocumentUseCase) holders(ctx context.Context, in sectionInput) (any, error) {
	h, err := uc.src.Holders(ctx, in.symbol)
	if err != nil {
		return nil, err
	}
	return models.Record{
		"majorHolders":         normalize.Extract(h.Major, normalize.MajorHoldersSchema),
		"institutionalHolders": uc.norm.Holders(h.Institutional),
		"mutualFundHolders":    uc.norm.Holders(h.MutualFund),
	}, nil
}

func (uc *DocumentUseCase) history(ctx context.Context, in sectionInput) (any, error) {
	rows, err := uc.src.TimeSeries(ctx, in.symbol, in.period, in.interval)
	if err != nil {
		return nil, err
	}
	return uc.norm.Series(rows), nil
}

func (uc *DocumentUseCase) options(ctx context.Context, in sectionInput) (any, error) {
	exps, err := uc.src.Options(ctx, in.symbol)
	if err != nil {
		return nil, err
	}
	out := models.Record{
		"expirationDates": uc.norm.ExpirationDates(exps),
		"optionsChain":    models.Record{},
	}
	if models.IsEmpty(exps) {
		return out, nil
	}
	chain, err := uc.src.OptionChain(ctx, in.symbol, exps[0])
	if err != nil {
		return nil, err
	}
	out["optionsChain"] = models.Record{
		"calls": uc.norm.Contracts(chain.Calls),
		"puts":  uc.norm.Contracts(chain.Puts),
	}
	return out, nil
}

func (uc *DocumentUseCase) news(ctx context.Context, in sectionInput) (any, error) {
	items, err := uc.src.News(ctx, in.symbol)
	if err != nil {
		return nil, err
	}
	return uc.norm.News(items), nil
}
