package socket

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socket_connects_total",
			Help: "Total number of established socket connections (including reconnects)",
		},
	)

	DisconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "socket_disconnects_total",
			Help: "Total number of socket disconnects",
		},
	)

	EventsInTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socket_events_in_total",
			Help: "Total number of inbound socket events by event name",
		},
		[]string{"event"},
	)

	EmitDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "socket_emit_dropped_total",
			Help: "Total number of outbound events dropped (buffer full or marshal error)",
		},
		[]string{"event"},
	)
)
