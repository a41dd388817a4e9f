package usecase

import (
	"context"
	"errors"
	"time"

	"FinDoc/internal/domain/models"
	"FinDoc/pkg/cache"
	applogger "FinDoc/pkg/logger"

	"golang.org/x/sync/singleflight"
)

const cachePrefix = "doc"

// CachedDocuments serves successful documents from a cache for a fixed TTL.
// Failures always go to the wrapped Documents and are never stored.
// Concurrent misses for the same key share one build.
type CachedDocuments struct {
	next   Documents
	cache  cache.Service
	ttl    time.Duration
	log    *applogger.Logger
	flight singleflight.Group
}

func NewCachedDocuments(next Documents, c cache.Service, ttl time.Duration, log *applogger.Logger) *CachedDocuments {
	if log == nil {
		log = applogger.Nop()
	}
	return &CachedDocuments{next: next, cache: c, ttl: ttl, log: log}
}

// CacheKey identifies a document by query type, symbol, period and interval.
func CacheKey(kind string, p DocumentParams) string {
	return cache.GenerateKeyWithParams(cachePrefix, kind, p.Symbol, p.Period, p.Interval)
}

func (c *CachedDocuments) Stock(ctx context.Context, p DocumentParams) *models.Envelope {
	return c.envelope(ctx, KindStock, p, func(ctx context.Context) *models.Envelope { return c.next.Stock(ctx, p) })
}

func (c *CachedDocuments) Section(ctx context.Context, kind string, p DocumentParams) *models.Envelope {
	return c.envelope(ctx, kind, p, func(ctx context.Context) *models.Envelope { return c.next.Section(ctx, kind, p) })
}

func (c *CachedDocuments) Summary(ctx context.Context, p DocumentParams) *models.SummaryEnvelope {
	key := CacheKey(KindSummary, p)
	if env, ok := lookup[models.SummaryEnvelope](ctx, c, key); ok {
		return env
	}
	env, err := share(ctx, c, key, func(ctx context.Context) (*models.SummaryEnvelope, bool) {
		env := c.next.Summary(ctx, p)
		return env, env != nil && env.Success
	})
	if err != nil {
		return &models.SummaryEnvelope{Success: false, Error: err.Error()}
	}
	return env
}

func (c *CachedDocuments) envelope(ctx context.Context, kind string, p DocumentParams, build func(context.Context) *models.Envelope) *models.Envelope {
	key := CacheKey(kind, p)
	if env, ok := lookup[models.Envelope](ctx, c, key); ok {
		return env
	}
	env, err := share(ctx, c, key, func(ctx context.Context) (*models.Envelope, bool) {
		env := build(ctx)
		return env, env != nil && env.Success
	})
	if err != nil {
		return models.NewFailure(p.Symbol, err)
	}
	return env
}

// share runs build once per key across concurrent callers. The build runs on
// a context detached from every caller, bounded by the wrapped use case's own
// deadline, so one caller going away never fails the others. A caller whose
// context ends first gets its context error.
func share[T any](ctx context.Context, c *CachedDocuments, key string, build func(context.Context) (*T, bool)) (*T, error) {
	bctx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(key, func() (interface{}, error) {
		v, ok := build(bctx)
		if ok {
			c.store(bctx, key, v)
		}
		return v, nil
	})
	select {
	case res := <-ch:
		return res.Val.(*T), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func lookup[T any](ctx context.Context, c *CachedDocuments, key string) (*T, bool) {
	v, err := cache.GetJSON[T](ctx, c.cache, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.log.Warn("cache read failed", applogger.String("key", key), applogger.Error(err))
		}
		return nil, false
	}
	return &v, true
}

func (c *CachedDocuments) store(ctx context.Context, key string, v any) {
	if err := cache.SetJSON(ctx, c.cache, key, v, c.ttl); err != nil {
		c.log.Warn("cache write failed", applogger.String("key", key), applogger.Error(err))
	}
}
