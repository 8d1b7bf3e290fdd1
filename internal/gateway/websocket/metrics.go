package websocket

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "websocket_sessions_active",
			Help: "Open websocket sessions by recipient role",
		},
		[]string{"role"},
	)

	MessagesDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_messages_dropped_total",
			Help: "Events dropped because the session send buffer was full",
		},
		[]string{"role"},
	)
)
