package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PublishRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_publish_retries_total",
			Help: "Total number of event publish retry attempts",
		},
		[]string{"kind", "result"},
	)

	PublishDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "events_publish_duration_seconds",
			Help:    "Duration of event publishing including retries",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"kind", "result"},
	)
)
