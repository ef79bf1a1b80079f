package obs

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup result labels for travelTimeLookups.
const (
	LookupHit   = "cache_hit"
	LookupOK    = "ok"
	LookupError = "error"
)

var (
	travelTimeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "homeservices",
		Subsystem: "traveltime",
		Name:      "lookups_total",
		Help:      "Travel-time estimates by result (cache_hit, ok, error).",
	}, []string{"result"})

	travelTimeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "homeservices",
		Subsystem: "traveltime",
		Name:      "lookup_seconds",
		Help:      "Latency of upstream travel-time lookups.",
		Buckets:   prometheus.DefBuckets,
	})

	breakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "homeservices",
		Subsystem: "traveltime",
		Name:      "breaker_transitions_total",
		Help:      "Circuit breaker state transitions on the travel-time upstream.",
	}, []string{"to"})

	matchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "homeservices",
		Subsystem: "match",
		Name:      "queries_total",
		Help:      "Availability queries by kind (slot, by_date, by_slot).",
	}, []string{"kind"})
)

// RecordTravelTimeLookup counts one estimate by outcome; duration is
// observed only for real upstream calls (zero means no call was made).
func RecordTravelTimeLookup(result string, duration time.Duration) {
	travelTimeLookups.WithLabelValues(result).Inc()
	if duration > 0 {
		travelTimeLatency.Observe(duration.Seconds())
	}
}

// RecordBreakerTransition counts a circuit breaker state change.
func RecordBreakerTransition(to string) {
	breakerTransitions.WithLabelValues(to).Inc()
}

// RecordMatchQuery counts one availability query.
func RecordMatchQuery(kind string) {
	matchQueries.WithLabelValues(kind).Inc()
}
