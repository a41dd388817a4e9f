package usecase

import (
	"context"

	"FinDoc/internal/domain/models"
	"FinDoc/internal/services/normalize"
	applogger "FinDoc/pkg/logger"
)

// Summary builds the ten-field scalar summary from the resolved info record.
func (uc *DocumentUseCase) Summary(ctx context.Context, p DocumentParams) *models.SummaryEnvelope {
	start := uc.now()
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	info, err := uc.resolve(ctx, p.Symbol)
	if err != nil {
		uc.log.Error("resolve symbol failed",
			applogger.String("symbol", p.Symbol),
			applogger.String("kind", KindSummary),
			applogger.Error(err),
		)
		uc.recordDocument(KindSummary, false)
		return &models.SummaryEnvelope{Success: false, Error: err.Error()}
	}

	ts := start
	uc.recordDocument(KindSummary, true)
	return &models.SummaryEnvelope{
		Success:   true,
		Symbol:    p.Symbol,
		Timestamp: &ts,
		Summary:   BuildSummary(info),
	}
}

// BuildSummary extracts the summary fields and the 52-week range string.
func BuildSummary(info models.Record) models.Record {
	out := normalize.Extract(info, normalize.SummarySchema)
	out["fiftyTwoWeekRange"] = normalize.Range(info["fiftyTwoWeekLow"], info["fiftyTwoWeekHigh"])
	return out
}
