// Package metrics registers the Prometheus collectors exposed on /metrics.
// This is part of the platform layer and contains no business logic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LeadsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bant_leads_scored_total",
			Help: "Total number of leads scored, by policy and resulting tier",
		},
		[]string{"policy", "tier"},
	)

	LeadScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bant_lead_score",
			Help:    "Distribution of overall BANT scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"policy"},
	)

	EmergencyCallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bant_emergency_callbacks_total",
			Help: "Total number of emergency callbacks requested",
		},
	)

	EmergencyCallbacksSuppressed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bant_emergency_callbacks_suppressed_total",
			Help: "Emergency callbacks skipped because the contact is in its cooldown window",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveLeadScore records one scoring outcome.
func ObserveLeadScore(policy, tier string, score int) {
	LeadsScored.WithLabelValues(policy, tier).Inc()
	LeadScore.WithLabelValues(policy).Observe(float64(score))
}

// Middleware records request latency labelled by the matched route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
