package prometheus

import (
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcomes used as label values on Resolutions.
const (
	OutcomeResolved = "resolved"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	// Resolutions counts short-link resolutions by outcome.
	Resolutions = promauto.NewCounterVec(promclient.CounterOpts{
		Name: "linkdeck_resolutions_total",
		Help: "Short-link resolutions by outcome.",
	}, []string{"outcome"})

	// VisitEventsConsumed counts visit events drained from the VISITS stream.
	VisitEventsConsumed = promauto.NewCounter(promclient.CounterOpts{
		Name: "linkdeck_visit_events_consumed_total",
		Help: "Visit events consumed from JetStream.",
	})

	// DestinationCacheHits counts resolve lookups answered from Redis.
	DestinationCacheHits = promauto.NewCounter(promclient.CounterOpts{
		Name: "linkdeck_destination_cache_hits_total",
		Help: "Resolve destinations served from the Redis cache.",
	})
)
