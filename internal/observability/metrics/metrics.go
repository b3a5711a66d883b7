package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes Prometheus instruments for the HTTP surface and the
// purchase write path.
type Metrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	purchases       *prometheus.CounterVec
	purchaseAmounts prometheus.Histogram
}

// New registers and returns the application metrics.
func New() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

func newMetrics(registerer prometheus.Registerer) *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "posapi_http_requests_total",
		Help: "Counts HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "posapi_http_request_duration_seconds",
		Help:    "HTTP request latency per method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	purchases := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "posapi_purchases_total",
		Help: "Counts purchase attempts by outcome.",
	}, []string{"outcome"})

	purchaseAmounts := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "posapi_purchase_amount",
		Help:    "Tax-inclusive purchase totals in minor currency units.",
		Buckets: prometheus.ExponentialBuckets(100, 4, 8),
	})

	registerer.MustRegister(httpRequests, httpDuration, purchases, purchaseAmounts)

	return &Metrics{
		httpRequests:    httpRequests,
		httpDuration:    httpDuration,
		purchases:       purchases,
		purchaseAmounts: purchaseAmounts,
	}
}

// RecordPurchase records a committed purchase and its total amount.
func (m *Metrics) RecordPurchase(totalAmount int64) {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues("committed").Inc()
	m.purchaseAmounts.Observe(float64(totalAmount))
}

// RecordPurchaseFailure records a rejected or failed purchase attempt.
func (m *Metrics) RecordPurchaseFailure(outcome string) {
	if m == nil {
		return
	}
	m.purchases.WithLabelValues(outcome).Inc()
}

// GinMiddleware records request counts and latencies per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
