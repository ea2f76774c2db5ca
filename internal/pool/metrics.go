package pool

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OffersReceivedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pool_offers_received_total",
			Help: "Total number of new_order_available broadcasts received",
		},
	)

	OffersTakenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pool_offers_taken_total",
			Help: "Total number of offers removed because another rider took them",
		},
	)

	OffersExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pool_offers_expired_total",
			Help: "Total number of offers pruned by the TTL sweep",
		},
	)

	AcceptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pool_accepts_total",
			Help: "Total number of rider_accept_order intents emitted",
		},
	)
)
