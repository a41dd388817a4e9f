package api

import (
	"net/http"
	"time"

	models "FinDoc/internal/domain/models"
	domrepo "FinDoc/internal/domain/repository"
	"FinDoc/internal/usecase"
	xhttp "FinDoc/pkg/http"
	xlogger "FinDoc/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DocumentsEchoHandler serves market documents over Echo.
type DocumentsEchoHandler struct {
	logger  *xlogger.Logger
	docs    usecase.Documents
	service string
	version string
	started time.Time
}

func NewDocumentsEchoHandler(logger *xlogger.Logger, docs usecase.Documents, service, version string) *DocumentsEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &DocumentsEchoHandler{logger: logger, docs: docs, service: service, version: version, started: time.Now()}
}

func (h *DocumentsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/health", h.Health)

	g := e.Group("/api")
	route := func(path string, fn echo.HandlerFunc) {
		g.GET(path, fn)
		g.POST(path, fn)
	}
	route("/stock", h.Stock)
	route("/summary", h.Summary)
	route("/history", h.section(usecase.KindHistory))
	route("/info", h.section(usecase.KindInfo))
	route("/news", h.section(usecase.KindNews))
	route("/financials", h.section(usecase.KindFinancials))
	route("/options", h.section(usecase.KindOptions))
}

func (h *DocumentsEchoHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": h.service,
		"version": h.version,
		"endpoints": map[string]string{
			"/api/stock":      "Full document: symbol, period, interval",
			"/api/summary":    "Ten-field summary: symbol",
			"/api/history":    "Historical prices: symbol, period, interval",
			"/api/info":       "Company overview: symbol",
			"/api/news":       "Recent news: symbol",
			"/api/financials": "Financial statements: symbol",
			"/api/options":    "Nearest option chain: symbol",
			"/health":         "Health check",
			"/metrics":        "Prometheus metrics",
		},
	})
}

func (h *DocumentsEchoHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   h.service,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
	})
}

func (h *DocumentsEchoHandler) Stock(c echo.Context) error {
	p, ok, err := h.params(c)
	if !ok {
		return err
	}
	return h.writeEnvelope(c, usecase.KindStock, h.docs.Stock(c.Request().Context(), p))
}

func (h *DocumentsEchoHandler) Summary(c echo.Context) error {
	p, ok, err := h.params(c)
	if !ok {
		return err
	}
	env := h.docs.Summary(c.Request().Context(), p)
	if !env.Success {
		h.logger.Warn("summary failed", xlogger.String("symbol", p.Symbol), xlogger.String("error", env.Error))
		return c.JSON(http.StatusInternalServerError, env)
	}
	return c.JSON(http.StatusOK, env)
}

func (h *DocumentsEchoHandler) section(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, ok, err := h.params(c)
		if !ok {
			return err
		}
		return h.writeEnvelope(c, kind, h.docs.Section(c.Request().Context(), kind, p))
	}
}

// params binds and validates the request. When ok is false the 400 has been written.
func (h *DocumentsEchoHandler) params(c echo.Context) (usecase.DocumentParams, bool, error) {
	req := &models.DocumentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return usecase.DocumentParams{}, false, xhttp.ValidationErrorResponse(c, verr)
	}
	return usecase.DocumentParams{
		Symbol:   req.Symbol,
		Period:   domrepo.NormalizePeriod(req.Period),
		Interval: domrepo.NormalizeInterval(req.Interval),
	}, true, nil
}

func (h *DocumentsEchoHandler) writeEnvelope(c echo.Context, kind string, env *models.Envelope) error {
	if !env.Success {
		h.logger.Warn("document failed",
			xlogger.String("kind", kind),
			xlogger.String("symbol", env.Symbol),
			xlogger.String("error", env.Error),
		)
		return c.JSON(http.StatusInternalServerError, env)
	}
	return c.JSON(http.StatusOK, env)
}
