package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssignmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_assignments_total",
			Help: "Assignment attempts by outcome",
		},
		[]string{"outcome"},
	)

	AssignmentTimeoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_assignment_timeouts_total",
			Help: "Assignments reverted because the driver did not answer in time",
		},
	)

	OrderTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_order_transitions_total",
			Help: "Order status transitions by target status",
		},
		[]string{"status"},
	)

	QueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dispatch_queue_length",
			Help: "Number of online drivers in the dispatch queue",
		},
	)

	NotificationsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_notifications_failed_total",
			Help: "Notifications that could not be delivered",
		},
		[]string{"kind"},
	)
)
