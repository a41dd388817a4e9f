package normalize

import (
	"strconv"
	"strings"
	"time"

	"FinDoc/internal/domain/models"
)

// Result limits.
const (
	MaxNews            = 5
	MaxRecommendations = 10
	MaxContracts       = 10
)

// News maps the first MaxNews items.
func (n *Normalizer) News(items []models.Record) []models.Record {
	return Map(Head(items, MaxNews), NewsSchema)
}

// Recommendations maps the most recent MaxRecommendations entries.
// Input is expected oldest first.
func (n *Normalizer) Recommendations(items []models.Record) []models.Record {
	return Map(Tail(items, MaxRecommendations), RecommendationSchema)
}

// Holders maps institutional or mutual-fund holder records.
func (n *Normalizer) Holders(items []models.Record) []models.Record {
	return Map(items, HolderSchema)
}

// Officers maps the companyOfficers list of an info record.
func (n *Normalizer) Officers(info models.Record) []models.Record {
	return Map(info["companyOfficers"], OfficerSchema)
}

// ExpirationDates renders option expirations as YYYY-MM-DD.
func (n *Normalizer) ExpirationDates(exps []time.Time) []string {
	out := make([]string, 0, len(exps))
	for _, t := range exps {
		out = append(out, t.UTC().Format(dateLayout))
	}
	return out
}

// Contracts passes through at most MaxContracts contracts with non-finite numbers nulled.
func (n *Normalizer) Contracts(contracts []models.Record) []models.Record {
	head := Head(contracts, MaxContracts)
	out := make([]models.Record, 0, len(head))
	for _, c := range head {
		if c == nil {
			out = append(out, models.Record{})
			continue
		}
		out = append(out, Sanitize(c).(models.Record))
	}
	return out
}

// Range renders "<low> - <high>", or nil when either bound is missing.
func Range(low, high any) any {
	lo, errLo := ToFloat(low)
	hi, errHi := ToFloat(high)
	if errLo != nil || errHi != nil || !lo.Valid || !hi.Valid {
		return nil
	}
	return formatBound(lo.Float64) + " - " + formatBound(hi.Float64)
}

// formatBound prints f in shortest form, keeping ".0" on integral values.
func formatBound(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}
