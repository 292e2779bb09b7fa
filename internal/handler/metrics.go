package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/zaheerkhan4077/YTBNICHES/internal/service"
	"github.com/zaheerkhan4077/YTBNICHES/internal/youtube"
)

// Metrics holds all Prometheus collectors for the backend.
var Metrics = struct {
	RunsTotal        *prometheus.CounterVec
	RunDuration      prometheus.Histogram
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	CacheHits        prometheus.CounterFunc
	CacheMisses      prometheus.CounterFunc
	QuotaUsed        prometheus.GaugeFunc
	QuotaRemaining   prometheus.GaugeFunc
	DBPoolActive     prometheus.GaugeFunc
	DBPoolIdle       prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool, cache *service.CacheService, quota *youtube.QuotaTracker) {
	Metrics.RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ytbniches_runs_total",
			Help: "Total aggregation runs executed, by mode.",
		},
		[]string{"mode"},
	)

	Metrics.RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ytbniches_run_duration_seconds",
			Help:    "Duration of full aggregation runs (search, fetch, filter).",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ytbniches_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ytbniches_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	// Cache and quota counters read live values from the services so the
	// handlers never have to touch the collectors directly.
	Metrics.CacheHits = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ytbniches_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
		func() float64 {
			return float64(cache.Hits())
		},
	)

	Metrics.CacheMisses = prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "ytbniches_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
		func() float64 {
			return float64(cache.Misses())
		},
	)

	Metrics.QuotaUsed = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "ytbniches_quota_used_units",
			Help: "Platform API quota units consumed today.",
		},
		func() float64 {
			return float64(quota.Used())
		},
	)

	Metrics.QuotaRemaining = prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "ytbniches_quota_remaining_units",
			Help: "Platform API quota units left for today.",
		},
		func() float64 {
			return float64(quota.Remaining())
		},
	)

	// DB pool gauges read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "ytbniches_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "ytbniches_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.RunsTotal,
		Metrics.RunDuration,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.QuotaUsed,
		Metrics.QuotaRemaining,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	if strings.HasPrefix(path, "/api/export.csv") {
		return "/api/export.csv"
	}
	return path
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.Context())
		return nil
	}
}
