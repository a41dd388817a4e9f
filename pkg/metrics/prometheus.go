package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	documents       *prometheus.CounterVec
	sectionFailures *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New creates a recorder registered with the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder registered with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		documents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findoc_documents_total",
				Help: "Documents built, by kind and outcome",
			},
			[]string{"kind", "success"},
		),
		sectionFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findoc_section_failures_total",
				Help: "Document sections replaced by their empty value after a failure",
			},
			[]string{"section"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "findoc_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordDocument counts a finished document.
func (r *Recorder) RecordDocument(kind string, success bool) {
	r.documents.WithLabelValues(kind, strconv.FormatBool(success)).Inc()
}

// RecordSectionFailure counts a failed section.
func (r *Recorder) RecordSectionFailure(section string) {
	r.sectionFailures.WithLabelValues(section).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
