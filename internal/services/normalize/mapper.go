package normalize

import (
	"FinDoc/internal/domain/models"
)

// Field maps one output key from the first present source key of a record.
type Field struct {
	Key     string
	From    []string
	Default any
	Convert func(any) any
}

// F declares a field read from the given source keys, tried in order.
func F(key string, def any, from ...string) Field {
	if len(from) == 0 {
		from = []string{key}
	}
	return Field{Key: key, From: from, Default: def}
}

// With attaches a converter applied to the source value before output.
func (f Field) With(convert func(any) any) Field {
	f.Convert = convert
	return f
}

func (f Field) value(rec map[string]any) any {
	for _, k := range f.From {
		v, ok := rec[k]
		if !ok || v == nil {
			continue
		}
		if f.Convert != nil {
			return Sanitize(f.Convert(v))
		}
		return Sanitize(v)
	}
	return f.Default
}

// Schema is an ordered list of fields.
type Schema []Field

// Keys lists the output keys in declaration order.
func (s Schema) Keys() []string {
	keys := make([]string, len(s))
	for i, f := range s {
		keys[i] = f.Key
	}
	return keys
}

// Extract applies schema to a single record. A nil or non-mapping record yields all defaults.
func Extract(rec any, schema Schema) models.Record {
	m := asMap(rec)
	out := make(models.Record, len(schema))
	for _, f := range schema {
		if m == nil {
			out[f.Key] = f.Default
			continue
		}
		out[f.Key] = f.value(m)
	}
	return out
}

// Map applies schema to every record of a list. Anything that is not a list maps to an empty list.
func Map(list any, schema Schema) []models.Record {
	switch xs := list.(type) {
	case []models.Record:
		out := make([]models.Record, 0, len(xs))
		for _, r := range xs {
			out = append(out, Extract(r, schema))
		}
		return out
	case []map[string]any:
		out := make([]models.Record, 0, len(xs))
		for _, r := range xs {
			out = append(out, Extract(r, schema))
		}
		return out
	case []any:
		out := make([]models.Record, 0, len(xs))
		for _, r := range xs {
			out = append(out, Extract(r, schema))
		}
		return out
	default:
		return []models.Record{}
	}
}
