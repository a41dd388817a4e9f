package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
	"time"

	"FinDoc/internal/domain/models"
	applogger "FinDoc/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTable_DatedColumnsWithMissingCell(t *testing.T) {
	n := New(nil)
	raw := models.RawTable{
		Rows:    []string{"A", "B"},
		Columns: []any{date(2023, 1, 1), date(2023, 4, 1)},
		Cells: [][]any{
			{1.0, 2.0},
			{3.0, math.NaN()},
		},
	}

	got := n.Table(raw)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"2023-01-01":{"A":1,"B":3},"2023-04-01":{"A":2,"B":null}}`, string(b))
}

func TestTable_QuarterLabelsStringified(t *testing.T) {
	n := New(nil)
	raw := models.RawTable{
		Rows:    []string{"Revenue"},
		Columns: []any{"4Q2023", 2024},
		Cells:   [][]any{{int64(10), json.Number("11.5")}},
	}

	got := n.Table(raw)

	require.Contains(t, got, "4Q2023")
	require.Contains(t, got, "2024")
	assert.Equal(t, 10.0, got["4Q2023"]["Revenue"].Float64)
	assert.Equal(t, 11.5, got["2024"]["Revenue"].Float64)
}

func TestTable_Empty(t *testing.T) {
	n := New(nil)
	got := n.Table(models.RawTable{})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	b, err := json.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}

func TestTable_InfinityBecomesNull(t *testing.T) {
	n := New(nil)
	raw := models.RawTable{
		Rows:    []string{"A"},
		Columns: []any{date(2023, 1, 1)},
		Cells:   [][]any{{math.Inf(1)}},
	}
	got := n.Table(raw)
	assert.False(t, got["2023-01-01"]["A"].Valid)
}

func TestTable_FailureYieldsEmptyAndLogs(t *testing.T) {
	var buf bytes.Buffer
	n := New(applogger.NewWithWriter(&buf, "debug"))

	raw := models.RawTable{
		Rows:    []string{"A"},
		Columns: []any{date(2023, 1, 1)},
		Cells:   [][]any{{"not a number"}},
	}
	got := n.Table(raw)

	assert.Empty(t, got)
	assert.Contains(t, buf.String(), "normalize table failed")
	assert.Contains(t, buf.String(), "not numeric")
}

func TestTable_RaggedRowFails(t *testing.T) {
	n := New(nil)
	raw := models.RawTable{
		Rows:    []string{"A", "B"},
		Columns: []any{date(2023, 1, 1), date(2023, 4, 1)},
		Cells:   [][]any{{1.0, 2.0}, {3.0}},
	}
	assert.Empty(t, n.Table(raw))
}
