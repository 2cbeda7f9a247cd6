package health

import (
	"coffeeshop_server/database"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds the collectors of one application instance on its own
// registry, so several routers can coexist in one process.
type Metrics struct {
	Registry     *prometheus.Registry
	HttpDuration *prometheus.HistogramVec
	HttpRequests *prometheus.CounterVec
}

func NewMetrics(db *database.DB) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HttpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "coffeeshop",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		HttpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coffeeshop",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}

	m.Registry.MustRegister(
		m.HttpDuration,
		m.HttpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if db != nil {
		m.Registry.MustRegister(collectors.NewDBStatsCollector(db.DB.DB, "coffeeshop"))
	}
	return m
}
