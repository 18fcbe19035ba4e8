// README: Prometheus collectors for completion calls, itinerary outcomes and catalog lookups.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tourplan"

var (
	CompletionCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completion_calls_total",
		Help:      "Completion endpoint calls by provider and stop reason (error when the call failed).",
	}, []string{"provider", "stop_reason"})

	CompletionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "completion_latency_seconds",
		Help:      "Latency of single completion endpoint calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
	}, []string{"provider"})

	PacingWaits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completion_pacing_waits_total",
		Help:      "Pacing delays taken between a paused completion and its continuation.",
	})

	ItineraryOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "itinerary_generations_total",
		Help:      "Itinerary generations by outcome: generated, fallback, malformed, error.",
	}, []string{"outcome"})

	CatalogLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_lookups_total",
		Help:      "Catalog entry lookups by result: fetched, cached, dropped.",
	}, []string{"result"})

	InventoryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "inventory_failures_total",
		Help:      "Inventory lookups that failed and left an entry without availability.",
	})
)

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
