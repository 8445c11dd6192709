// Package metrics exposes Prometheus counters for submissions and exports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission outcomes used as the "result" label.
const (
	ResultSaved   = "saved"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
)

// Metrics holds all Prometheus metrics for the service on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	Submissions  *prometheus.CounterVec
	Exports      prometheus.Counter
	RateLimited  prometheus.Counter
	StoreRecords prometheus.Gauge
}

// New creates and registers all metrics on a fresh registry, together with
// the standard Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pinstore_submissions_total",
			Help: "PIN submissions by outcome",
		}, []string{"result"}),
		Exports: factory.NewCounter(prometheus.CounterOpts{
			Name: "pinstore_csv_exports_total",
			Help: "CSV exports served",
		}),
		RateLimited: factory.NewCounter(prometheus.CounterOpts{
			Name: "pinstore_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		}),
		StoreRecords: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pinstore_store_records",
			Help: "Records currently retained, as of the last read",
		}),
	}
}

// ObserveSubmission increments the submission counter for result.
func (m *Metrics) ObserveSubmission(result string) {
	m.Submissions.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
