package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"FinDoc/internal/domain/models"

	"github.com/guregu/null/v6"
)

// ErrNotNumeric is returned when a table cell cannot be read as a number.
var ErrNotNumeric = errors.New("value is not numeric")

const dateLayout = "2006-01-02"

// FormatLabel renders a period label: dates as YYYY-MM-DD, anything else via fmt.
func FormatLabel(label any) string {
	switch v := label.(type) {
	case time.Time:
		return v.Format(dateLayout)
	case *time.Time:
		if v != nil {
			return v.Format(dateLayout)
		}
	case string:
		return v
	}
	return fmt.Sprint(label)
}

// ToFloat coerces a provider cell into a nullable double.
// nil, NaN and ±Inf become null.
func ToFloat(v any) (null.Float, error) {
	switch x := v.(type) {
	case nil:
		return null.Float{}, nil
	case float64:
		return finite(x), nil
	case float32:
		return finite(float64(x)), nil
	case int:
		return null.FloatFrom(float64(x)), nil
	case int8:
		return null.FloatFrom(float64(x)), nil
	case int16:
		return null.FloatFrom(float64(x)), nil
	case int32:
		return null.FloatFrom(float64(x)), nil
	case int64:
		return null.FloatFrom(float64(x)), nil
	case uint:
		return null.FloatFrom(float64(x)), nil
	case uint8:
		return null.FloatFrom(float64(x)), nil
	case uint16:
		return null.FloatFrom(float64(x)), nil
	case uint32:
		return null.FloatFrom(float64(x)), nil
	case uint64:
		return null.FloatFrom(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return null.Float{}, fmt.Errorf("%w: %q", ErrNotNumeric, x.String())
		}
		return finite(f), nil
	case null.Float:
		if !x.Valid {
			return null.Float{}, nil
		}
		return finite(x.Float64), nil
	default:
		return null.Float{}, fmt.Errorf("%w: %T", ErrNotNumeric, v)
	}
}

func finite(f float64) null.Float {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return null.Float{}
	}
	return null.FloatFrom(f)
}

// Sanitize returns v with every non-finite float replaced by nil.
// Maps and slices are copied, never modified in place.
func Sanitize(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case float32:
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case null.Float:
		if !x.Valid || math.IsNaN(x.Float64) || math.IsInf(x.Float64, 0) {
			return nil
		}
		return x.Float64
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Sanitize(e)
		}
		return out
	case models.Record:
		out := make(models.Record, len(x))
		for k, e := range x {
			out[k] = Sanitize(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Sanitize(e)
		}
		return out
	default:
		return v
	}
}

// EpochSeconds reads a numeric epoch timestamp. Zero and non-numeric values are rejected.
func EpochSeconds(v any) (time.Time, bool) {
	f, err := ToFloat(v)
	if err != nil || !f.Valid || f.Float64 == 0 {
		return time.Time{}, false
	}
	return time.Unix(int64(f.Float64), 0).UTC(), true
}

// EpochToISO converts epoch seconds to an RFC3339 UTC datetime, or nil.
func EpochToISO(v any) any {
	t, ok := EpochSeconds(v)
	if !ok {
		return nil
	}
	return t.Format(time.RFC3339)
}

// EpochToDate converts epoch seconds (or a time) to YYYY-MM-DD. Strings pass through.
func EpochToDate(v any) any {
	switch x := v.(type) {
	case string:
		return x
	case time.Time:
		return x.UTC().Format(dateLayout)
	}
	t, ok := EpochSeconds(v)
	if !ok {
		return nil
	}
	return t.Format(dateLayout)
}

// EpochListToDates converts a list of epoch seconds to YYYY-MM-DD strings.
func EpochListToDates(v any) any {
	xs, ok := v.([]any)
	if !ok {
		if d := EpochToDate(v); d != nil {
			return []any{d}
		}
		return []any{}
	}
	out := make([]any, 0, len(xs))
	for _, x := range xs {
		if d := EpochToDate(x); d != nil {
			out = append(out, d)
		}
	}
	return out
}

// FirstResolutionURL picks thumbnail.resolutions[0].url, or nil.
func FirstResolutionURL(v any) any {
	thumb := asMap(v)
	if thumb == nil {
		return nil
	}
	res, ok := thumb["resolutions"].([]any)
	if !ok || len(res) == 0 {
		return nil
	}
	first := asMap(res[0])
	if first == nil {
		return nil
	}
	if url, ok := first["url"].(string); ok && url != "" {
		return url
	}
	return nil
}

// FormatDate renders a time as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case models.Record:
		return m
	default:
		return nil
	}
}
