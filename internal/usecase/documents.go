package usecase

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"FinDoc/internal/domain/models"
	domrepo "FinDoc/internal/domain/repository"
	"FinDoc/internal/services/normalize"
	applogger "FinDoc/pkg/logger"
)

// Document kinds served over HTTP. Also used as cache and event keys.
const (
	KindStock      = "stock"
	KindSummary    = "summary"
	KindHistory    = "history"
	KindInfo       = "info"
	KindNews       = "news"
	KindFinancials = "financials"
	KindOptions    = "options"
)

// sectionKinds maps single-section document kinds to their section.
var sectionKinds = map[string]string{
	KindHistory:    SectionHistoricalData,
	KindInfo:       SectionCompanyInfo,
	KindNews:       SectionNews,
	KindFinancials: SectionFinancialStatements,
	KindOptions:    SectionOptions,
}

// IsSectionKind reports whether kind names a single-section document.
func IsSectionKind(kind string) bool {
	_, ok := sectionKinds[kind]
	return ok
}

// DocumentParams are the validated request inputs.
type DocumentParams struct {
	Symbol   string
	Period   domrepo.Period
	Interval domrepo.Interval
}

// Documents builds response envelopes for a symbol.
type Documents interface {
	Stock(ctx context.Context, p DocumentParams) *models.Envelope
	Summary(ctx context.Context, p DocumentParams) *models.SummaryEnvelope
	Section(ctx context.Context, kind string, p DocumentParams) *models.Envelope
}

// DocumentUseCase assembles documents from a DataSource.
type DocumentUseCase struct {
	src     domrepo.DataSource
	norm    *normalize.Normalizer
	metrics domrepo.Metrics
	pub     domrepo.DocumentPublisher
	log     *applogger.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewDocumentUseCase wires the aggregator. metrics and pub may be nil.
func NewDocumentUseCase(src domrepo.DataSource, norm *normalize.Normalizer, metrics domrepo.Metrics, pub domrepo.DocumentPublisher, log *applogger.Logger, timeout time.Duration) *DocumentUseCase {
	if log == nil {
		log = applogger.Nop()
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &DocumentUseCase{
		src:     src,
		norm:    norm,
		metrics: metrics,
		pub:     pub,
		log:     log,
		timeout: timeout,
		now:     time.Now,
	}
}

// Stock builds the full eleven-section document.
func (uc *DocumentUseCase) Stock(ctx context.Context, p DocumentParams) *models.Envelope {
	return uc.build(ctx, KindStock, p, sections)
}

// Section builds a document holding a single section.
func (uc *DocumentUseCase) Section(ctx context.Context, kind string, p DocumentParams) *models.Envelope {
	name, ok := sectionKinds[kind]
	if !ok {
		return models.NewFailure(p.Symbol, fmt.Errorf("unknown document kind %q", kind))
	}
	return uc.build(ctx, kind, p, []section{sectionByName(name)})
}

func (uc *DocumentUseCase) build(ctx context.Context, kind string, p DocumentParams, secs []section) *models.Envelope {
	start := uc.now()
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	info, err := uc.resolve(ctx, p.Symbol)
	if err != nil {
		uc.log.Error("resolve symbol failed",
			applogger.String("symbol", p.Symbol),
			applogger.String("kind", kind),
			applogger.Error(err),
		)
		uc.recordDocument(kind, false)
		return models.NewFailure(p.Symbol, err)
	}

	in := sectionInput{symbol: p.Symbol, period: p.Period, interval: p.Interval, info: info}
	data := uc.assemble(ctx, in, secs)

	ts := start
	env := &models.Envelope{
		Success:   true,
		Symbol:    p.Symbol,
		Timestamp: &ts,
		Data:      data,
	}
	uc.recordDocument(kind, true)
	if uc.metrics != nil {
		uc.metrics.RecordLatency("document_"+kind, uc.now().Sub(start).Seconds())
	}
	uc.publish(ctx, kind, env)
	return env
}

func (uc *DocumentUseCase) resolve(ctx context.Context, symbol string) (models.Record, error) {
	start := uc.now()
	info, err := uc.src.Overview(ctx, symbol)
	if uc.metrics != nil {
		uc.metrics.RecordLatency("source_overview", uc.now().Sub(start).Seconds())
	}
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = models.Record{}
	}
	return info, nil
}

// sectionResult is the outcome of one section build.
type sectionResult struct {
	name string
	val  any
	err  error
}

// assemble runs every section concurrently and folds the results.
// A failed section contributes its empty value; it never fails the document.
func (uc *DocumentUseCase) assemble(ctx context.Context, in sectionInput, secs []section) map[string]any {
	ch := make(chan sectionResult, len(secs))
	var wg sync.WaitGroup

	for _, s := range secs {
		wg.Add(1)
		go func(s section) {
			defer wg.Done()
			ch <- uc.run(ctx, s, in)
		}(s)
	}

	go func() { wg.Wait(); close(ch) }()

	data := make(map[string]any, len(secs))
	for res := range ch {
		if res.err != nil {
			uc.log.Error("section failed",
				applogger.String("section", res.name),
				applogger.String("symbol", in.symbol),
				applogger.Error(res.err),
			)
			if uc.metrics != nil {
				uc.metrics.RecordSectionFailure(res.name)
			}
			data[res.name] = sectionByName(res.name).empty()
			continue
		}
		data[res.name] = res.val
	}
	return data
}

func (uc *DocumentUseCase) run(ctx context.Context, s section, in sectionInput) (res sectionResult) {
	res.name = s.name
	defer func() {
		if r := recover(); r != nil {
			uc.log.Debug("section panic", applogger.String("section", s.name), applogger.String("stack", string(debug.Stack())))
			res.val = nil
			res.err = fmt.Errorf("panic: %v", r)
		}
	}()
	if err := ctx.Err(); err != nil {
		res.err = err
		return res
	}
	res.val, res.err = s.build(uc, ctx, in)
	return res
}

func (uc *DocumentUseCase) recordDocument(kind string, success bool) {
	if uc.metrics != nil {
		uc.metrics.RecordDocument(kind, success)
	}
}

func (uc *DocumentUseCase) publish(ctx context.Context, kind string, env *models.Envelope) {
	if uc.pub == nil {
		return
	}
	if err := uc.pub.Publish(ctx, kind, env); err != nil {
		uc.log.Warn("publish document failed",
			applogger.String("symbol", env.Symbol),
			applogger.String("kind", kind),
			applogger.Error(err),
		)
	}
}
