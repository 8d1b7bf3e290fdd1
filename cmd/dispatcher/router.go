package main

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	application "taxi-dispatch/internal/app"
	"taxi-dispatch/internal/gateway/notify"
	"taxi-dispatch/internal/handlers/rest/driver_activity_put"
	"taxi-dispatch/internal/handlers/rest/driver_get"
	"taxi-dispatch/internal/handlers/rest/driver_offline_post"
	"taxi-dispatch/internal/handlers/rest/driver_online_post"
	"taxi-dispatch/internal/handlers/rest/driver_order_get"
	"taxi-dispatch/internal/handlers/rest/driver_post"
	"taxi-dispatch/internal/handlers/rest/driver_put"
	"taxi-dispatch/internal/handlers/rest/drivers_get"
	"taxi-dispatch/internal/handlers/rest/healthcheck_head"
	"taxi-dispatch/internal/handlers/rest/order_accept_post"
	"taxi-dispatch/internal/handlers/rest/order_advance_post"
	"taxi-dispatch/internal/handlers/rest/order_cancel_post"
	"taxi-dispatch/internal/handlers/rest/order_get"
	"taxi-dispatch/internal/handlers/rest/order_post"
	"taxi-dispatch/internal/handlers/rest/order_reject_post"
	"taxi-dispatch/internal/handlers/rest/ping_get"
	"taxi-dispatch/internal/handlers/rest/queue_get"
	"taxi-dispatch/internal/handlers/ws/events_get"
	"taxi-dispatch/internal/pkg/config"
	"taxi-dispatch/internal/pkg/middlewares/graceful_shutdown"
	"taxi-dispatch/internal/pkg/middlewares/metrics"
	"taxi-dispatch/internal/pkg/middlewares/rate_limiter"
	"taxi-dispatch/internal/pkg/middlewares/timeout"
	"taxi-dispatch/pkg/logger"
	"taxi-dispatch/pkg/token_bucket"
)

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	pool *pgxpool.Pool,
	app *application.Application,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))
	router.Use(metrics.Middleware(log))

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods("HEAD")

	// websocket живет дольше таймаута запроса и не расходует токены
	router.Handle("/ws/drivers/{id}", events_get.New(log, app.Hub, notify.RecipientDriver)).Methods("GET")
	router.Handle("/ws/passengers/{id}", events_get.New(log, app.Hub, notify.RecipientPassenger)).Methods("GET")

	api := router.PathPrefix("/").Subrouter()
	api.Use(timeout.Middleware(cfg.RequestTimeout))
	api.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))

	api.Handle("/ping", ping_get.New(log)).Methods("GET")

	api.Handle("/drivers", drivers_get.New(log, app.ServiceDriver)).Methods("GET")
	api.Handle("/drivers", driver_post.New(log, app.ServiceDriver)).Methods("POST")
	api.Handle("/drivers", driver_put.New(log, app.ServiceDriver)).Methods("PUT")
	api.Handle("/drivers/{id}", driver_get.New(log, app.ServiceDriver)).Methods("GET")

	api.Handle("/drivers/{id}/online", driver_online_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/drivers/{id}/offline", driver_offline_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/drivers/{id}/activity", driver_activity_put.New(log, app.ServiceDispatch)).Methods("PUT")
	api.Handle("/drivers/{id}/order", driver_order_get.New(log, app.ServiceDispatch)).Methods("GET")

	api.Handle("/orders", order_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/orders/{id}", order_get.New(log, app.ServiceDispatch)).Methods("GET")
	api.Handle("/orders/{id}/accept", order_accept_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/orders/{id}/reject", order_reject_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/orders/{id}/advance", order_advance_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/orders/{id}/cancel", order_cancel_post.New(log, app.ServiceDispatch)).Methods("POST")

	api.Handle("/queue", queue_get.New(log, app.ServiceDispatch)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, pool *pgxpool.Pool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
