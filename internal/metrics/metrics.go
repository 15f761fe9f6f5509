package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookmarks_http_requests_total",
		Help: "HTTP requests served, by method, route pattern and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookmarks_http_request_duration_seconds",
		Help:    "Time from request receipt to response completion.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "route"})

	BookmarksCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookmarks_created_total",
		Help: "Bookmarks successfully inserted.",
	})

	BookmarksDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookmarks_deleted_total",
		Help: "Bookmarks successfully deleted.",
	})

	BookmarksTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookmarks_total",
		Help: "Number of bookmarks in the database.",
	})
)
