package normalize

import (
	"FinDoc/internal/domain/models"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// Series converts dated bars into OHLCV points, keeping input order.
func (n *Normalizer) Series(rows []models.SeriesRow) []models.TimeSeriesPoint {
	out := make([]models.TimeSeriesPoint, 0, len(rows))
	if models.IsEmpty(rows) {
		return out
	}
	for _, r := range rows {
		out = append(out, models.TimeSeriesPoint{
			Date:        FormatDate(r.Time),
			Open:        Round2(r.Open),
			High:        Round2(r.High),
			Low:         Round2(r.Low),
			Close:       Round2(r.Close),
			Volume:      TruncateInt(r.Volume),
			Dividends:   OrZero(r.Dividends),
			StockSplits: OrZero(r.StockSplits),
		})
	}
	return out
}

// Dividends converts a dividend history into dated amounts, keeping input order.
func (n *Normalizer) Dividends(history []models.DatedValue) []models.DividendPoint {
	out := make([]models.DividendPoint, 0, len(history))
	for _, d := range history {
		out = append(out, models.DividendPoint{
			Date:   FormatDate(d.Time),
			Amount: finiteOrNull(d.Amount),
		})
	}
	return out
}

// Round2 rounds to two decimals, half away from zero on the shortest decimal form.
func Round2(v null.Float) null.Float {
	v = finiteOrNull(v)
	if !v.Valid {
		return v
	}
	f, _ := decimal.NewFromFloat(v.Float64).Round(2).Float64()
	return null.FloatFrom(f)
}

// TruncateInt drops the fractional part; missing values become 0.
func TruncateInt(v null.Float) int64 {
	v = finiteOrNull(v)
	if !v.Valid {
		return 0
	}
	return decimal.NewFromFloat(v.Float64).Truncate(0).IntPart()
}

// OrZero returns the value or 0.0 when missing.
func OrZero(v null.Float) float64 {
	v = finiteOrNull(v)
	if !v.Valid {
		return 0
	}
	return v.Float64
}

func finiteOrNull(v null.Float) null.Float {
	if !v.Valid {
		return v
	}
	return finite(v.Float64)
}
