package yahoo

import (
	"sort"
	"strings"
	"time"

	"FinDoc/internal/domain/models"
)

// unwrap replaces Yahoo's {"raw": x, "fmt": "..."} wrappers with x and
// empty objects with nil, recursively.
func unwrap(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if raw, ok := x["raw"]; ok {
			return raw
		}
		if len(x) == 0 {
			return nil
		}
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = unwrap(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = unwrap(e)
		}
		return out
	default:
		return v
	}
}

func record(v any) models.Record {
	if m, ok := unwrap(v).(map[string]any); ok {
		return models.Record(m)
	}
	return models.Record{}
}

func records(v any) []models.Record {
	xs, ok := v.([]any)
	if !ok {
		return []models.Record{}
	}
	out := make([]models.Record, 0, len(xs))
	for _, x := range xs {
		out = append(out, record(x))
	}
	return out
}

// merge copies keys of src missing (or nil) in dst.
func merge(dst, src models.Record) {
	for k, v := range src {
		if cur, ok := dst[k]; !ok || cur == nil {
			dst[k] = v
		}
	}
}

func epochTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case float64:
		if x == 0 {
			return time.Time{}, false
		}
		return time.Unix(int64(x), 0).UTC(), true
	case int64:
		return time.Unix(x, 0).UTC(), true
	}
	return time.Time{}, false
}

// statementTable turns a list of per-period statements into a metrics-by-period table.
func statementTable(list any) models.RawTable {
	stmts := records(unwrap(list))
	if len(stmts) == 0 {
		return models.RawTable{}
	}

	metricSet := map[string]struct{}{}
	for _, s := range stmts {
		for k := range s {
			if k == "endDate" || k == "maxAge" || !numericOrNil(s[k]) {
				continue
			}
			metricSet[k] = struct{}{}
		}
	}
	rows := make([]string, 0, len(metricSet))
	for k := range metricSet {
		rows = append(rows, k)
	}
	sort.Strings(rows)

	cols := make([]any, 0, len(stmts))
	for _, s := range stmts {
		if t, ok := epochTime(s["endDate"]); ok {
			cols = append(cols, t)
		} else {
			cols = append(cols, s["endDate"])
		}
	}

	cells := make([][]any, len(rows))
	for i, metric := range rows {
		cells[i] = make([]any, len(stmts))
		for j, s := range stmts {
			cells[i][j] = s[metric]
		}
	}
	return models.RawTable{Rows: rows, Columns: cols, Cells: cells}
}

// seriesTable builds a table from records keyed by labelKey, using the given metric keys as rows.
func seriesTable(list []models.Record, labelKey string, metrics map[string]string) models.RawTable {
	if len(list) == 0 {
		return models.RawTable{}
	}
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]string, len(keys))
	cells := make([][]any, len(keys))
	for i, k := range keys {
		rows[i] = metrics[k]
		cells[i] = make([]any, len(list))
		for j, r := range list {
			cells[i][j] = r[k]
		}
	}
	cols := make([]any, len(list))
	for j, r := range list {
		cols[j] = r[labelKey]
	}
	return models.RawTable{Rows: rows, Columns: cols, Cells: cells}
}

// estimateTable flattens earningsTrend entries: rows are estimate fields, columns are periods.
func estimateTable(trend []models.Record, field string) models.RawTable {
	var cols []any
	var entries []models.Record
	for _, t := range trend {
		est, ok := t[field].(map[string]any)
		if !ok {
			continue
		}
		cols = append(cols, t["period"])
		entries = append(entries, models.Record(est))
	}
	if len(entries) == 0 {
		return models.RawTable{}
	}

	rowSet := map[string]struct{}{}
	for _, e := range entries {
		for k, v := range e {
			if numericOrNil(v) {
				rowSet[k] = struct{}{}
			}
		}
	}
	rows := make([]string, 0, len(rowSet))
	for k := range rowSet {
		rows = append(rows, k)
	}
	sort.Strings(rows)

	cells := make([][]any, len(rows))
	for i, k := range rows {
		cells[i] = make([]any, len(entries))
		for j, e := range entries {
			cells[i][j] = e[k]
		}
	}
	return models.RawTable{Rows: rows, Columns: cols, Cells: cells}
}

func numericOrNil(v any) bool {
	switch v.(type) {
	case nil, float64, int64, int:
		return true
	}
	return false
}

func isNotFound(code string) bool {
	return strings.EqualFold(code, "Not Found")
}
