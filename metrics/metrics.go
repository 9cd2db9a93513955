package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"octofit-backend/errs"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "octofit",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency of HTTP requests, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	storeOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "octofit",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Document store operations, by collection, operation and outcome.",
	}, []string{"collection", "operation", "outcome"})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, storeOperations)
}

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveStore counts one store call; err decides the outcome label.
func ObserveStore(collection, operation string, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, errs.ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	storeOperations.WithLabelValues(collection, operation, outcome).Inc()
}
