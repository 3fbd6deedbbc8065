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

	"github.com/Jeanads/trendx-analytics/internal/service"
)

type metricSet struct {
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	ReloadDuration   prometheus.Histogram
	SnapshotUsers    prometheus.Gauge
	SnapshotVideos   prometheus.Gauge
	ResolveTotal     *prometheus.CounterVec
}

// Metrics holds all Prometheus collectors of the analytics API. They exist
// from package init so handlers can record before InitMetrics registers them.
var Metrics = newMetricSet()

func newMetricSet() metricSet {
	return metricSet{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trendx_api_request_duration_seconds",
				Help:    "HTTP request duration in seconds, by endpoint and method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "method", "status"},
		),
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trendx_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trendx_cache_hits_total",
			Help: "Total Redis cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trendx_cache_misses_total",
			Help: "Total Redis cache misses.",
		}),
		ReloadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "trendx_snapshot_reload_duration_seconds",
			Help:    "Duration of dataset reloads, including annotation and indexing.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		SnapshotUsers: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trendx_snapshot_users",
			Help: "Users in the current snapshot.",
		}),
		SnapshotVideos: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trendx_snapshot_videos",
			Help: "Videos in the current snapshot.",
		}),
		ResolveTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trendx_resolve_total",
				Help: "Link resolutions, by detected platform and outcome.",
			},
			[]string{"platform", "outcome"},
		),
	}
}

// InitMetrics registers all Prometheus metrics. Call once at startup. pool
// is nil when the dataset is not read from Postgres.
func InitMetrics(pool *pgxpool.Pool) {
	if pool != nil {
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "trendx_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 {
					return float64(pool.Stat().AcquiredConns())
				},
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "trendx_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 {
					return float64(pool.Stat().IdleConns())
				},
			),
		)
	}

	prometheus.MustRegister(
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
		Metrics.CacheHits,
		Metrics.CacheMisses,
		Metrics.ReloadDuration,
		Metrics.SnapshotUsers,
		Metrics.SnapshotVideos,
		Metrics.ResolveTotal,
	)
}

// ObserveReload records a completed snapshot reload. It matches
// service.ReloadObserver.
func ObserveReload(elapsed time.Duration, snap *service.Snapshot) {
	Metrics.ReloadDuration.Observe(elapsed.Seconds())
	Metrics.SnapshotUsers.Set(float64(len(snap.Users)))
	Metrics.SnapshotVideos.Set(float64(len(snap.Videos)))
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next(); Fiber
		// returns slices backed by the fasthttp buffer which can be reused.
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
	if rest, ok := strings.CutPrefix(path, "/api/users/"); ok && rest != "" {
		return "/api/users/:name"
	}
	return path
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
