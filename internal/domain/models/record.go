package models

import (
	"time"
)

// Record is a loosely-typed provider record.
type Record map[string]any

// IsEmpty reports whether a list holds no elements.
// Shared by every normalizer instead of ad hoc len checks.
func IsEmpty[T any](xs []T) bool {
	return len(xs) == 0
}

// Earnings holds the provider's earnings tables and the upcoming earnings calendar.
type Earnings struct {
	Quarterly RawTable
	Yearly    RawTable
	Calendar  Record
}

// Dividends holds dividend facts and the payment history.
type Dividends struct {
	Facts   Record
	History []DatedValue
}

// Analyst holds analyst opinions for a symbol.
type Analyst struct {
	Recommendations  []Record
	PriceTargets     Record
	EarningsEstimate RawTable
	RevenueEstimate  RawTable
}

// Holders holds ownership breakdowns.
type Holders struct {
	Major         Record
	Institutional []Record
	MutualFund    []Record
}

// OptionChain is the contract chain for one expiration.
type OptionChain struct {
	Expiration time.Time
	Calls      []Record
	Puts       []Record
}
