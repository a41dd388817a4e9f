package repository

// Period is the look-back range of a historical series.
type Period string

// Interval is the bar size of a historical series.
type Interval string

const (
	Period1d  Period = "1d"
	Period5d  Period = "5d"
	Period1mo Period = "1mo"
	Period3mo Period = "3mo"
	Period6mo Period = "6mo"
	Period1y  Period = "1y"
	Period2y  Period = "2y"
	Period5y  Period = "5y"
	Period10y Period = "10y"
	PeriodYTD Period = "ytd"
	PeriodMax Period = "max"
)

const (
	Interval1m  Interval = "1m"
	Interval2m  Interval = "2m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval60m Interval = "60m"
	Interval90m Interval = "90m"
	Interval1h  Interval = "1h"
	Interval1d  Interval = "1d"
	Interval5d  Interval = "5d"
	Interval1wk Interval = "1wk"
	Interval1mo Interval = "1mo"
	Interval3mo Interval = "3mo"
)

// IsValidPeriod returns true if p is a supported period.
func IsValidPeriod(p Period) bool {
	switch p {
	case Period1d, Period5d, Period1mo, Period3mo, Period6mo, Period1y,
		Period2y, Period5y, Period10y, PeriodYTD, PeriodMax:
		return true
	default:
		return false
	}
}

// IsValidInterval returns true if i is a supported interval.
func IsValidInterval(i Interval) bool {
	switch i {
	case Interval1m, Interval2m, Interval5m, Interval15m, Interval30m, Interval60m,
		Interval90m, Interval1h, Interval1d, Interval5d, Interval1wk, Interval1mo, Interval3mo:
		return true
	default:
		return false
	}
}

// DefaultPeriod returns the default period.
func DefaultPeriod() Period { return Period1mo }

// DefaultInterval returns the default interval.
func DefaultInterval() Interval { return Interval1d }

// NormalizePeriod converts a raw string to a valid period (or the default).
func NormalizePeriod(s string) Period {
	p := Period(s)
	if IsValidPeriod(p) {
		return p
	}
	return DefaultPeriod()
}

// NormalizeInterval converts a raw string to a valid interval (or the default).
func NormalizeInterval(s string) Interval {
	i := Interval(s)
	if IsValidInterval(i) {
		return i
	}
	return DefaultInterval()
}
