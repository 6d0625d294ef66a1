package httpx

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pulsemetrics/adpulse/internal/store"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics registers adpulse collectors on the given registry. The
// stored-run gauges read from the history database at scrape time, so
// reports generated by separate CLI invocations are still visible here.
func NewMetrics(reg prometheus.Registerer, db *store.DB) *Metrics {
	factory := promauto.With(reg)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "adpulse",
		Name:      "runs_stored",
		Help:      "Reporting runs recorded in the history database.",
	}, func() float64 {
		n, err := db.CountRuns()
		if err != nil {
			return 0
		}
		return float64(n)
	})

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "adpulse",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "adpulse",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}
