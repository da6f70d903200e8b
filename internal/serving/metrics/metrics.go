package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the query API.
type Metrics struct {
	// Request latency by route
	RequestDuration *prometheus.HistogramVec

	// Request outcomes by route and status code
	RequestsTotal *prometheus.CounterVec

	// Tier fallbacks by requested and served tier
	TierFallbacks *prometheus.CounterVec

	// Single-gene lookups by resolved tier (or "not_found")
	LookupOutcome *prometheus.CounterVec
}

// New creates a new Metrics instance with all serving metrics registered.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lacuene_api_request_duration_seconds",
			Help:    "Duration of API requests by route",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"route"}),

		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lacuene_api_requests_total",
			Help: "Total API requests by route and status code",
		}, []string{"route", "status"}),

		TierFallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lacuene_api_tier_fallbacks_total",
			Help: "Gene listings served by a fallback tier",
		}, []string{"requested", "served"}),

		LookupOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lacuene_api_gene_lookups_total",
			Help: "Single-gene lookups by resolved tier",
		}, []string{"tier"}),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route).Observe(d.Seconds())
		m.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	}
}

// IncrementFallback records a listing served by a fallback tier.
func (m *Metrics) IncrementFallback(requested, served string) {
	if m != nil {
		m.TierFallbacks.WithLabelValues(requested, served).Inc()
	}
}

// IncrementLookup records a single-gene lookup outcome.
func (m *Metrics) IncrementLookup(tier string) {
	if m != nil {
		m.LookupOutcome.WithLabelValues(tier).Inc()
	}
}
