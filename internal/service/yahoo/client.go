// Package yahoo implements repository.DataSource over Yahoo Finance JSON endpoints.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	domrepo "FinDoc/internal/domain/repository"
	upstream "FinDoc/internal/service/metrics"
	apphttp "FinDoc/pkg/http"
	applogger "FinDoc/pkg/logger"
)

const (
	DefaultBaseURL   = "https://query2.finance.yahoo.com"
	DefaultCookieURL = "https://fc.yahoo.com"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Config configures the Yahoo client.
type Config struct {
	BaseURL   string
	CookieURL string
	UserAgent string
	Timeout   time.Duration
}

// Client talks to Yahoo Finance. A crumb is fetched once and reused.
type Client struct {
	cfg  Config
	http *apphttp.Client
	log  *applogger.Logger

	mu    sync.Mutex
	crumb string
}

var _ domrepo.DataSource = (*Client)(nil)

// New creates a Yahoo client.
func New(cfg Config, log *applogger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.CookieURL == "" {
		cfg.CookieURL = DefaultCookieURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if log == nil {
		log = applogger.Nop()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		http: apphttp.NewClient(
			apphttp.WithTimeout(cfg.Timeout),
			apphttp.WithCookieJar(),
			apphttp.WithHeader("User-Agent", cfg.UserAgent),
			apphttp.WithHeader("Accept", "application/json"),
		),
		log: log,
	}
}

// getCrumb returns the session crumb, bootstrapping the cookie on first use.
func (c *Client) getCrumb(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.crumb != "" {
		return c.crumb, nil
	}

	// fc.yahoo.com answers 404 but sets the session cookie.
	var statusErr *apphttp.StatusError
	if err := c.http.SendAndParse(ctx, &apphttp.RequestOptions{URL: c.cfg.CookieURL}, nil); err != nil && !errors.As(err, &statusErr) {
		return "", fmt.Errorf("yahoo cookie: %w", err)
	}

	var crumb string
	if err := c.http.SendAndParse(ctx, &apphttp.RequestOptions{URL: c.cfg.BaseURL + "/v1/test/getcrumb"}, &crumb); err != nil {
		return "", fmt.Errorf("yahoo crumb: %w", err)
	}
	crumb = strings.TrimSpace(crumb)
	if crumb == "" || strings.Contains(crumb, "<") {
		return "", errors.New("yahoo crumb: empty response")
	}
	c.crumb = crumb
	c.log.Debug("yahoo crumb acquired")
	return crumb, nil
}

func (c *Client) resetCrumb() {
	c.mu.Lock()
	c.crumb = ""
	c.mu.Unlock()
}

// get fetches path with query and decodes JSON into dest.
func (c *Client) get(ctx context.Context, path string, query map[string][]string, withCrumb bool, dest interface{}) error {
	if withCrumb {
		crumb, err := c.getCrumb(ctx)
		if err != nil {
			return err
		}
		if query == nil {
			query = map[string][]string{}
		}
		query["crumb"] = []string{crumb}
	}

	start := time.Now()
	err := c.http.SendAndParse(ctx, &apphttp.RequestOptions{
		Method:      apphttp.MethodGet,
		URL:         c.cfg.BaseURL + path,
		QueryParams: query,
	}, dest)
	elapsed := time.Since(start)
	upstream.Observe(path, elapsed.Seconds(), err)
	c.log.Debug("yahoo request",
		applogger.String("path", path),
		applogger.Duration("duration_ms", elapsed),
	)
	if err == nil {
		return nil
	}

	var statusErr *apphttp.StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Code {
		case http.StatusNotFound:
			return domrepo.ErrSymbolNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			c.resetCrumb()
		}
	}
	return fmt.Errorf("yahoo %s: %w", path, err)
}
