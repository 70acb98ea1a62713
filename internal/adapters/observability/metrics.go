package observability

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tablescout", Name: "http_requests_total", Help: "HTTP requests."},
		[]string{"route", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tablescout", Name: "http_request_duration_seconds",
			Help:    "HTTP request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tablescout", Name: "upstream_requests_total", Help: "Outbound search requests."},
		[]string{"service", "status"},
	)
	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tablescout", Name: "upstream_request_duration_seconds",
			Help:    "Outbound search request duration seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)
	Retries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tablescout", Name: "upstream_retries_total", Help: "Retry attempts by reason."},
		[]string{"service", "reason"}, // reason: transient_status|network
	)
	CategorySearches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tablescout", Name: "category_searches_total", Help: "Per-category search outcomes."},
		[]string{"status"}, // status: complete|partial_failure
	)
	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "tablescout", Name: "cache_events_total", Help: "Cache hits/misses/sets/dels."},
		[]string{"cache", "event"}, // event: hit|miss|set|del
	)
)

func Serve() {
	addr := os.Getenv("METRICS_ADDR")
	if addr == "" {
		return // disabled
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		log.Info().Str("addr", addr).Msg("metrics server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()
}

func InitRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(HTTPRequests, HTTPLatency, UpstreamRequests, UpstreamLatency, Retries, CategorySearches, CacheEvents)
	return reg
}

func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func ObserveHTTP(route, method string, status int, dur time.Duration) {
	HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPLatency.WithLabelValues(route, method).Observe(dur.Seconds())
}

func ObserveUpstream(service string, status int, dur time.Duration) {
	UpstreamRequests.WithLabelValues(service, strconv.Itoa(status)).Inc()
	UpstreamLatency.WithLabelValues(service).Observe(dur.Seconds())
}

func ObserveRetry(service, reason string) {
	Retries.WithLabelValues(service, reason).Inc()
}

func ObserveCategory(status string) {
	CategorySearches.WithLabelValues(status).Inc()
}

func ObserveCache(cache, event string) { // event: hit|miss|set|del
	CacheEvents.WithLabelValues(cache, event).Inc()
}
