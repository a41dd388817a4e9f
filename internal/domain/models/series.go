package models

import (
	"time"

	"github.com/guregu/null/v6"
)

// SeriesRow is one dated bar as delivered by a provider. Any value may be absent.
type SeriesRow struct {
	Time        time.Time
	Open        null.Float
	High        null.Float
	Low         null.Float
	Close       null.Float
	Volume      null.Float
	Dividends   null.Float
	StockSplits null.Float
}

// TimeSeriesPoint is a normalized OHLCV bar.
type TimeSeriesPoint struct {
	Date        string     `json:"date"`
	Open        null.Float `json:"open"`
	High        null.Float `json:"high"`
	Low         null.Float `json:"low"`
	Close       null.Float `json:"close"`
	Volume      int64      `json:"volume"`
	Dividends   float64    `json:"dividends"`
	StockSplits float64    `json:"stockSplits"`
}

// DatedValue is a single dated amount, e.g. a dividend payment.
type DatedValue struct {
	Time   time.Time
	Amount null.Float
}

// DividendPoint is one normalized dividend payment.
type DividendPoint struct {
	Date   string     `json:"date"`
	Amount null.Float `json:"amount"`
}
