package normalize

import (
	"fmt"

	"FinDoc/internal/domain/models"
	applogger "FinDoc/pkg/logger"

	"github.com/guregu/null/v6"
)

// Table flattens a metrics-by-periods table into period → metric → value.
// A table that cannot be coerced yields an empty mapping; the cause is logged.
func (n *Normalizer) Table(raw models.RawTable) models.NormalizedTable {
	out, err := convertTable(raw)
	if err != nil {
		if n.l != nil {
			n.l.Error("normalize table failed",
				applogger.Int("rows", len(raw.Rows)),
				applogger.Int("columns", len(raw.Columns)),
				applogger.Error(err),
			)
		}
		return models.NormalizedTable{}
	}
	return out
}

func convertTable(raw models.RawTable) (models.NormalizedTable, error) {
	out := make(models.NormalizedTable, len(raw.Columns))
	if raw.IsEmpty() {
		return out, nil
	}
	if len(raw.Cells) != len(raw.Rows) {
		return nil, fmt.Errorf("table has %d rows but %d cell rows", len(raw.Rows), len(raw.Cells))
	}
	for i, row := range raw.Cells {
		if len(row) != len(raw.Columns) {
			return nil, fmt.Errorf("row %q has %d cells, want %d", raw.Rows[i], len(row), len(raw.Columns))
		}
	}

	for j, col := range raw.Columns {
		label := FormatLabel(col)
		values := make(map[string]null.Float, len(raw.Rows))
		for i, metric := range raw.Rows {
			v, err := ToFloat(raw.Cells[i][j])
			if err != nil {
				return nil, fmt.Errorf("cell %q/%s: %w", metric, label, err)
			}
			values[metric] = v
		}
		out[label] = values
	}
	return out, nil
}
