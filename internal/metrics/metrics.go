package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "team_users"

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "repository",
	Name:      "query_duration_seconds",
	Help:      "Duration of read queries against the user store",
	Buckets:   prometheus.DefBuckets,
}, []string{"query"})

var authOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "auth",
	Name:      "requests_total",
	Help:      "Authentication and authorization outcomes per guard",
}, []string{"guard", "outcome"})

// ObserveQuery records how long the named query took since start.
// Meant to be deferred: defer metrics.ObserveQuery("list_by_ids", time.Now())
func ObserveQuery(query string, start time.Time) {
	queryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

// IncAuthOutcome counts a guard decision, e.g. ("authenticate", "rejected").
func IncAuthOutcome(guard, outcome string) {
	authOutcomes.WithLabelValues(guard, outcome).Inc()
}
