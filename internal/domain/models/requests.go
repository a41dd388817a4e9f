package models

import "strings"

// DocumentRequest is the query accepted by every document endpoint.
// GET binds from the query string, POST from a JSON body.
type DocumentRequest struct {
	Symbol   string `query:"symbol" json:"symbol" validate:"required"`
	Period   string `query:"period" json:"period" default:"1mo" validate:"oneof=1d 5d 1mo 3mo 6mo 1y 2y 5y 10y ytd max"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1m 2m 5m 15m 30m 60m 90m 1h 1d 5d 1wk 1mo 3mo"`
}

// Normalize trims surrounding whitespace. Symbol case is preserved.
func (r *DocumentRequest) Normalize() {
	r.Symbol = strings.TrimSpace(r.Symbol)
	r.Period = strings.TrimSpace(r.Period)
	r.Interval = strings.TrimSpace(r.Interval)
}
