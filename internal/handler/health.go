package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"

	"github.com/Jeanads/trendx-analytics/internal/repository"
	"github.com/Jeanads/trendx-analytics/internal/service"
)

type HealthHandler struct {
	source    repository.Source
	rdb       *redis.Client
	snapshots *service.SnapshotService
	startAt   time.Time
}

func NewHealthHandler(snapshots *service.SnapshotService, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		source:    snapshots.Source(),
		rdb:       rdb,
		snapshots: snapshots,
		startAt:   time.Now(),
	}
}

// Live handles GET /health/live, the liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready. The service is ready once a snapshot is
// published; a failing source only degrades it, since reads are served from
// memory.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	overallStatus := "healthy"

	snapshot := checkSnapshot(h.snapshots)
	if snapshot["status"] != "up" {
		overallStatus = "unavailable"
	}

	source := checkSource(ctx, h.source)
	if source["status"] != "up" && overallStatus == "healthy" {
		overallStatus = "degraded"
	}

	cache := checkRedis(ctx, h.rdb)
	if cache["status"] == "down" && overallStatus == "healthy" {
		overallStatus = "degraded"
	}

	resp := fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"snapshot": snapshot,
			"source":   source,
			"redis":    cache,
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        "1.0.0",
	}

	status := fiber.StatusOK
	if overallStatus == "unavailable" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(resp)
}

func checkSnapshot(snapshots *service.SnapshotService) fiber.Map {
	snap, err := snapshots.Current()
	if err != nil {
		return fiber.Map{
			"status": "down",
			"error":  "not loaded",
		}
	}
	return fiber.Map{
		"status":      "up",
		"users":       len(snap.Users),
		"videos":      len(snap.Videos),
		"loaded_at":   snap.LoadedAt,
		"fingerprint": snap.Fingerprint,
	}
}

func checkSource(ctx context.Context, source repository.Source) fiber.Map {
	start := time.Now()
	err := source.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"kind":       source.Name(),
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"kind":       source.Name(),
		"latency_ms": latency,
	}
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
