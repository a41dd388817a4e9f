package normalize

// Entity schemas. Output keys are camelCase; source keys follow the provider.
var (
	OfficerSchema = Schema{
		F("name", "", "name"),
		F("title", "", "title"),
		F("age", nil, "age"),
		F("yearBorn", nil, "yearBorn"),
		F("totalPay", nil, "totalPay"),
	}

	HolderSchema = Schema{
		F("holder", "", "organization", "Holder"),
		F("shares", 0, "position", "Shares"),
		F("dateReported", "", "reportDate", "Date Reported").With(EpochToDate),
		F("percentOut", 0, "pctHeld", "% Out"),
		F("value", 0, "value", "Value"),
	}

	RecommendationSchema = Schema{
		F("date", "", "epochGradeDate", "date").With(EpochToDate),
		F("firm", "", "firm", "Firm"),
		F("toGrade", "", "toGrade", "To Grade"),
		F("fromGrade", "", "fromGrade", "From Grade"),
		F("action", "", "action", "Action"),
	}

	NewsSchema = Schema{
		F("title", nil, "title"),
		F("publisher", nil, "publisher"),
		F("link", nil, "link"),
		F("publishedTime", nil, "providerPublishTime").With(EpochToISO),
		F("type", nil, "type"),
		F("thumbnailUrl", nil, "thumbnail").With(FirstResolutionURL),
	}
)

// Scalar schemas over the flat info record.
var (
	OverviewSchema = Schema{
		F("name", nil, "longName", "shortName"),
		F("sector", nil),
		F("industry", nil),
		F("country", nil),
		F("city", nil),
		F("state", nil),
		F("website", nil),
		F("phone", nil),
		F("employees", nil, "fullTimeEmployees"),
		F("description", nil, "longBusinessSummary"),
	}

	TradingSchema = Schema{
		F("price", nil, "currentPrice", "regularMarketPrice"),
		F("previousClose", nil, "previousClose", "regularMarketPreviousClose"),
		F("open", nil, "open", "regularMarketOpen"),
		F("dayHigh", nil, "dayHigh", "regularMarketDayHigh"),
		F("dayLow", nil, "dayLow", "regularMarketDayLow"),
		F("volume", nil, "volume", "regularMarketVolume"),
		F("averageVolume", nil),
		F("averageVolume10days", nil, "averageVolume10days", "averageDailyVolume10Day"),
		F("bid", nil),
		F("ask", nil),
		F("bidSize", nil),
		F("askSize", nil),
		F("marketCap", nil),
		F("fiftyTwoWeekHigh", nil),
		F("fiftyTwoWeekLow", nil),
		F("fiftyDayAverage", nil),
		F("twoHundredDayAverage", nil),
		F("currency", "USD"),
		F("exchange", nil),
		F("quoteType", nil),
		F("exchangeTimezone", nil, "exchangeTimezoneName"),
	}

	ValuationSchema = Schema{
		F("peRatio", nil, "trailingPE"),
		F("forwardPe", nil, "forwardPE"),
		F("pegRatio", nil, "pegRatio", "trailingPegRatio"),
		F("priceToSales", nil, "priceToSalesTrailing12Months"),
		F("priceToBook", nil),
		F("enterpriseValue", nil),
		F("enterpriseToRevenue", nil),
		F("enterpriseToEbitda", nil),
	}

	ProfitabilitySchema = Schema{
		F("profitMargin", nil, "profitMargins"),
		F("operatingMargin", nil, "operatingMargins"),
		F("returnOnAssets", nil),
		F("returnOnEquity", nil),
		F("revenuePerShare", nil),
		F("quarterlyRevenueGrowth", nil, "quarterlyRevenueGrowth", "revenueGrowth"),
		F("grossProfit", nil, "grossProfits"),
		F("ebitda", nil),
		F("netIncome", nil, "netIncomeToCommon"),
		F("earningsQuarterlyGrowth", nil),
	}

	FinancialHealthSchema = Schema{
		F("totalCash", nil),
		F("totalCashPerShare", nil),
		F("totalDebt", nil),
		F("debtToEquity", nil),
		F("currentRatio", nil),
		F("quickRatio", nil),
		F("operatingCashFlow", nil, "operatingCashflow"),
		F("freeCashFlow", nil, "freeCashflow"),
	}

	PerShareSchema = Schema{
		F("earningsPerShare", nil, "trailingEps"),
		F("forwardEps", nil),
		F("bookValuePerShare", nil, "bookValue"),
		F("revenuePerShare", nil),
		F("cashPerShare", nil, "totalCashPerShare"),
	}

	DividendFactsSchema = Schema{
		F("dividendRate", nil),
		F("dividendYield", nil),
		F("exDividendDate", nil).With(EpochToDate),
		F("payoutRatio", nil),
		F("fiveYearAvgDividendYield", nil),
		F("trailingAnnualDividendRate", nil),
		F("trailingAnnualDividendYield", nil),
	}

	PriceTargetSchema = Schema{
		F("current", nil, "currentPrice", "regularMarketPrice"),
		F("targetHigh", nil, "targetHighPrice"),
		F("targetLow", nil, "targetLowPrice"),
		F("targetMean", nil, "targetMeanPrice"),
		F("targetMedian", nil, "targetMedianPrice"),
		F("numberOfAnalysts", nil, "numberOfAnalystOpinions"),
	}

	MajorHoldersSchema = Schema{
		F("insidersPercentHeld", nil),
		F("institutionsPercentHeld", nil),
		F("institutionsFloatPercentHeld", nil),
		F("institutionsCount", nil),
	}

	EarningsCalendarSchema = Schema{
		F("earningsDate", []any{}).With(EpochListToDates),
		F("earningsAverage", nil),
		F("earningsLow", nil),
		F("earningsHigh", nil),
		F("revenueAverage", nil),
		F("revenueLow", nil),
		F("revenueHigh", nil),
	}

	SummarySchema = Schema{
		F("name", nil, "longName", "shortName"),
		F("price", nil, "currentPrice", "regularMarketPrice"),
		F("marketCap", nil),
		F("peRatio", nil, "trailingPE"),
		F("eps", nil, "trailingEps"),
		F("dividendYield", nil),
		F("revenue", nil, "totalRevenue"),
		F("profitMargin", nil, "profitMargins"),
		F("recommendation", nil, "recommendationKey"),
	}
)
