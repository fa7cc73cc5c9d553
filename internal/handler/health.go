package handler

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/orbitx-mcn/orbitx-go/internal/model"
)

const healthMessage = "OrbitX MCN Backend is running"

type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     *redis.Client
	dataDir string
	startAt time.Time
}

// NewHealthHandler builds the health endpoints. pool is nil with the file
// backend, in which case dataDir is reported instead; rdb is nil when caching
// is disabled.
func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client, dataDir string) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		rdb:     rdb,
		dataDir: dataDir,
		startAt: time.Now(),
	}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(c fiber.Ctx) error {
	return c.JSON(model.HealthResponse{Status: "ok", Message: healthMessage})
}

// Ready handles GET /health/ready — readiness check with dependency checks.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	checks := make(fiber.Map)
	overallStatus := "healthy"

	store := h.checkStore(ctx)
	checks["store"] = store
	if store["status"] != "up" {
		overallStatus = "degraded"
	}

	cache := checkRedis(ctx, h.rdb)
	checks["redis"] = cache
	if s := cache["status"]; s != "up" && s != "disabled" && overallStatus == "healthy" {
		overallStatus = "degraded"
	}

	resp := fiber.Map{
		"status":         overallStatus,
		"checks":         checks,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        "1.0.0",
	}

	status := fiber.StatusOK
	if overallStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(resp)
}

func (h *HealthHandler) checkStore(ctx context.Context) fiber.Map {
	if h.pool == nil {
		return checkDataDir(h.dataDir)
	}

	start := time.Now()
	err := h.pool.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"backend":    "postgres",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"backend":    "postgres",
		"latency_ms": latency,
	}
}

// checkDataDir reports the file backend as up only when dir exists and a
// file can be created in it.
func checkDataDir(dir string) fiber.Map {
	m := fiber.Map{
		"backend": "file",
		"dir":     dir,
	}
	f, err := os.CreateTemp(dir, ".ready-*")
	if err != nil {
		m["status"] = "down"
		m["error"] = "data directory not writable"
		return m
	}
	f.Close()
	os.Remove(f.Name())
	m["status"] = "up"
	return m
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{
			"status": "disabled",
		}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
