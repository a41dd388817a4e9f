package models

import (
	"github.com/guregu/null/v6"
)

// RawTable is a provider statement laid out as metrics (rows) by reporting periods (columns).
// Column labels are time.Time for dated periods and anything else for labels like "2Q2024".
// Cells[i][j] holds the value of Rows[i] for Columns[j]; nil means missing.
type RawTable struct {
	Rows    []string
	Columns []any
	Cells   [][]any
}

// IsEmpty reports whether the table has no rows or no columns.
func (t RawTable) IsEmpty() bool {
	return len(t.Rows) == 0 || len(t.Columns) == 0
}

// NormalizedTable maps a formatted period label to metric label to value.
type NormalizedTable map[string]map[string]null.Float

// Statements groups the six financial statement tables of a company.
type Statements struct {
	Income            RawTable
	QuarterlyIncome   RawTable
	Balance           RawTable
	QuarterlyBalance  RawTable
	CashFlow          RawTable
	QuarterlyCashFlow RawTable
}
