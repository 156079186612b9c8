// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// GateDecisions counts access-gate outcomes by result and reason.
	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "school_access_gate_decisions_total",
		Help: "Access gate decisions by result and lock reason.",
	}, []string{"result", "reason"})

	// CodeRedemptions counts trial code redemption attempts by outcome.
	CodeRedemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "school_access_code_redemptions_total",
		Help: "Trial access code redemption attempts by outcome.",
	}, []string{"outcome"})

	// HTTPRequests counts requests by method and status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "school_access_http_requests_total",
		Help: "HTTP requests by method and status.",
	}, []string{"method", "status"})
)

// ObserveGate records a gate decision
func ObserveGate(granted bool, reason string) {
	result := "granted"
	if !granted {
		result = "locked"
	}
	GateDecisions.WithLabelValues(result, reason).Inc()
}

// Handler returns the /metrics endpoint handler
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RequestMiddleware counts completed requests
func RequestMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		HTTPRequests.WithLabelValues(c.Request.Method, statusClass(c.Writer.Status())).Inc()
	}
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
