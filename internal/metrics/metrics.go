package metrics

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Collectors are created eagerly so services and tests can record values
// whether or not Register has been called.
var (
	CreatorMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitx_creator_mutations_total",
			Help: "Creator mutations applied, by audit action.",
		},
		[]string{"action"},
	)

	CollaboratorFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orbitx_collaborator_fallbacks_total",
			Help: "External collaborator calls answered with mock data, by collaborator.",
		},
		[]string{"collaborator"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orbitx_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "orbitx_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitx_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orbitx_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Pool gauges are only
// registered when a pgx pool is in use. Safe to call more than once.
func Register(pool *pgxpool.Pool) {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CreatorMutations,
			CollaboratorFallbacks,
			RequestDuration,
			RequestsInFlight,
			CacheHits,
			CacheMisses,
		)

		if pool == nil {
			return
		}
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "orbitx_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 { return float64(pool.Stat().AcquiredConns()) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "orbitx_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 { return float64(pool.Stat().IdleConns()) },
			),
		)
	})
}

// Middleware records request duration and in-flight count.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Fiber hands out strings backed by the fasthttp buffer, which may be
		// reused once the handler returns. Copy before c.Next().
		endpoint := SanitizeEndpoint(string([]byte(c.Path())))
		method := string([]byte(c.Method()))

		RequestsInFlight.Inc()
		defer RequestsInFlight.Dec()
		start := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		RequestDuration.WithLabelValues(endpoint, method, status).Observe(time.Since(start).Seconds())

		return err
	}
}

// SanitizeEndpoint collapses creator ids so label cardinality stays bounded.
func SanitizeEndpoint(path string) string {
	const prefix = "/api/creators/"
	if !strings.HasPrefix(path, prefix) || len(path) == len(prefix) {
		return path
	}
	rest := path[len(prefix):]
	if rest == "export" {
		return path
	}
	if strings.HasSuffix(rest, "/sync") {
		return prefix + ":id/sync"
	}
	return prefix + ":id"
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	h := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		h(c.RequestCtx())
		return nil
	}
}
