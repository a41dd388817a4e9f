// Package metrics holds collectors for calls to the upstream market data provider.
package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "findoc",
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Latency of upstream provider calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	UpstreamErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "findoc",
			Subsystem: "upstream",
			Name:      "errors_total",
			Help:      "Failed upstream provider calls",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(UpstreamLatency, UpstreamErrors)
	})
}

// Endpoint reduces a request path to a low-cardinality label by dropping the symbol segment.
//
//	/v10/finance/quoteSummary/AAPL -> /v10/finance/quoteSummary
func Endpoint(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return "/" + strings.Join(parts, "/")
}

// Observe records one upstream call.
func Observe(path string, seconds float64, err error) {
	ep := Endpoint(path)
	UpstreamLatency.WithLabelValues(ep).Observe(seconds)
	if err != nil {
		UpstreamErrors.WithLabelValues(ep).Inc()
	}
}
