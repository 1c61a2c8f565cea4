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
)

// Metrics holds all Prometheus collectors for the catalog backend.
var Metrics = struct {
	GradeLoadsTotal    *prometheus.CounterVec
	ProgressTotal      *prometheus.CounterVec
	ReportsTotal       *prometheus.CounterVec
	BulkCreditStudents prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
	RequestsInFlight   prometheus.Gauge
	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	DBPoolActive       prometheus.GaugeFunc
	DBPoolIdle         prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.GradeLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_grade_loads_total",
			Help: "Grade tree loads served, by grade number.",
		},
		[]string{"grade"},
	)

	Metrics.ProgressTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_progress_writes_total",
			Help: "Watched-state writes, by kind (single or bulk).",
		},
		[]string{"kind"},
	)

	Metrics.ReportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reports_total",
			Help: "Media reports, by transition (submitted or resolved).",
		},
		[]string{"transition"},
	)

	Metrics.BulkCreditStudents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_bulk_credit_students_total",
			Help: "Total per-student rows touched by bulk credit.",
		},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	Metrics.CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	Metrics.CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)

	// DB pool gauges read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "catalog_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "catalog_db_connection_pool_idle",
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
		Metrics.GradeLoadsTotal,
		Metrics.ProgressTotal,
		Metrics.ReportsTotal,
		Metrics.BulkCreditStudents,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
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
	switch {
	case strings.HasPrefix(path, "/api/grades/"):
		return "/api/grades/:gradeNum"
	case strings.HasPrefix(path, "/api/progress/") && path != "/api/progress/bulk":
		return "/api/progress/:studentId"
	case strings.HasPrefix(path, "/api/users/"):
		return "/api/users/:userId"
	case strings.HasPrefix(path, "/api/reports/"):
		return "/api/reports/:id"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
