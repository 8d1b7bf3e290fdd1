package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RejectedTotal считает ответы 429 по шаблону маршрута.
var RejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limited_requests_total",
		Help: "Requests rejected with 429 by the token bucket",
	},
	[]string{"method", "route"},
)
