package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_tracker",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests grouped by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDurationHistogram = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fitness_tracker",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency grouped by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	writesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitness_tracker",
		Subsystem: "service",
		Name:      "writes_total",
		Help:      "Number of service write operations grouped by entity, operation and outcome.",
	}, []string{"entity", "operation", "outcome"})
)

func init() {
	prometheus.MustRegister(httpRequestsCounter, httpDurationHistogram, writesCounter)
}

// Исходы операций записи.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// RecordHTTPRequest учитывает завершённый HTTP-запрос.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsCounter.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDurationHistogram.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordWrite учитывает операцию записи сервисного слоя.
func RecordWrite(entity, operation, outcome string) {
	writesCounter.WithLabelValues(entity, operation, outcome).Inc()
}
