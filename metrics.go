package carenest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesDispatchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carenest_client",
			Name:      "searches_dispatched_total",
			Help:      "Discovery searches sent to the backend after debouncing.",
		},
	)

	searchesSupersededTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "carenest_client",
			Name:      "search_results_superseded_total",
			Help:      "Search responses discarded because a newer dispatch was issued.",
		},
	)

	bookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "carenest_client",
			Name:      "bookings_total",
			Help:      "Booking submissions by outcome.",
		},
		[]string{"outcome"},
	)
)
