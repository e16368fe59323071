// Package metrics exposes Prometheus counters for the session layer.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	// SessionOps counts login, register and logout attempts by outcome.
	SessionOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timesheet_web",
		Name:      "session_ops_total",
		Help:      "Session operations by operation and result.",
	}, []string{"op", "result"})

	// GuardRedirects counts navigations refused by a route guard.
	GuardRedirects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "timesheet_web",
		Name:      "guard_redirects_total",
		Help:      "Requests turned away by a route guard.",
	}, []string{"guard"})
)

// ObserveSessionOp records the outcome of a session operation.
func ObserveSessionOp(op string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	SessionOps.WithLabelValues(op, result).Inc()
}

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
