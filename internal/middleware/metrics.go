package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	postingBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_posting_batches_total",
			Help: "Total number of posting batches written, by document type and outcome.",
		},
		[]string{"transaction_type", "outcome"},
	)
)

// Metrics creates a Gin middleware that records request counts and latencies.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordPostingBatch increments the posting batch counter. Outcome is one of
// "posted", "reversed" or "failed".
func RecordPostingBatch(transactionType string, outcome string) {
	postingBatchesTotal.WithLabelValues(transactionType, outcome).Inc()
}
