package models

import "time"

// Envelope is the top-level response document.
// Data is set on success, Error on a top-level failure.
type Envelope struct {
	Success   bool           `json:"success"`
	Symbol    string         `json:"symbol"`
	Timestamp *time.Time     `json:"timestamp,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// SummaryEnvelope carries the short scalar summary of a symbol.
// On failure only Success and Error are set.
type SummaryEnvelope struct {
	Success   bool       `json:"success"`
	Symbol    string     `json:"symbol,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Summary   Record     `json:"summary,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// NewFailure builds a top-level failure envelope.
func NewFailure(symbol string, err error) *Envelope {
	return &Envelope{Success: false, Symbol: symbol, Error: err.Error()}
}
