package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"FinDoc/pkg/cache"
	"FinDoc/pkg/config"
	xhttp "FinDoc/pkg/http"
	"FinDoc/pkg/http/middleware"
	pkgkafka "FinDoc/pkg/kafka"
	applogger "FinDoc/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    xhttp.Handler
	limiter    middleware.Limiter
	producer   *pkgkafka.Producer
	cache      cache.Service
	httpServer *xhttp.Server
}

// New creates a new App. producer, c and limiter may be nil.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	h xhttp.Handler,
	limiter middleware.Limiter,
	producer *pkgkafka.Producer,
	c cache.Service,
) *App {
	if l == nil {
		l = applogger.Nop()
	}
	a := &App{
		cfg:      cfg,
		log:      l,
		handler:  h,
		limiter:  limiter,
		producer: producer,
		cache:    c,
	}
	a.httpServer = xhttp.NewServer(a.handler, a.log, a.serverOptions()...)
	return a
}

func (a *App) serverOptions() []xhttp.ServerOption {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(a.cfg.Server.Host),
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithCORS(a.cfg.Server.CORS),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.SlowThreshold),
	}
	if a.limiter != nil {
		opts = append(opts, xhttp.WithRateLimit(a.limiter))
	}
	return opts
}

// HTTPServer exposes the configured server.
func (a *App) HTTPServer() *xhttp.Server { return a.httpServer }

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext serves until ctx is done, then shuts down.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("findoc started",
		applogger.String("env", a.cfg.Environment),
		applogger.Int("port", a.cfg.Server.Port),
		applogger.Bool("cache", a.cache != nil),
		applogger.Bool("kafka", a.producer != nil),
	)

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown(context.Background())
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	// Flush aggregated error logs before the producer goes away.
	a.log.RemoveCollector()

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.log.Warn("cache close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
