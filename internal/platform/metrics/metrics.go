// Package metrics exposes Prometheus counters and histograms for postings and reports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smb_ledger"

// Metrics owns its registry so tests and multiple app instances do not collide.
type Metrics struct {
	registry       *prometheus.Registry
	postingsTotal  *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
}

// New registers the ledger collectors plus the Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		postingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "postings_total",
			Help:      "Source records processed by the posting translator, by kind and outcome.",
		}, []string{"kind", "result"}),
		reportDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent building a report.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"report"}),
	}
}

// ObservePosting counts one processed source record.
func (m *Metrics) ObservePosting(kind, result string) {
	m.postingsTotal.WithLabelValues(kind, result).Inc()
}

// ObserveReport records how long a report took.
func (m *Metrics) ObserveReport(report string, elapsed time.Duration) {
	m.reportDuration.WithLabelValues(report).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
