package postgres

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_query_duration_seconds",
			Help:    "Spatial store query latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query", "status"},
	)

	storeRowsReturned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_rows_returned_total",
			Help: "Rows materialized from spatial store queries",
		},
		[]string{"query"},
	)
)

func observeQuery(query string, start time.Time, rows int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	storeQueryDuration.WithLabelValues(query, status).Observe(time.Since(start).Seconds())
	if err == nil {
		storeRowsReturned.WithLabelValues(query).Add(float64(rows))
	}
}
