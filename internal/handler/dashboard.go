package handler

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/Jeanads/trendx-analytics/internal/middleware"
	"github.com/Jeanads/trendx-analytics/internal/model"
	"github.com/Jeanads/trendx-analytics/internal/service"
)

type DashboardHandler struct {
	svc   *service.DashboardService
	cache *service.CacheService
}

func NewDashboardHandler(svc *service.DashboardService, cache *service.CacheService) *DashboardHandler {
	return &DashboardHandler{svc: svc, cache: cache}
}

// cached serves key from Redis when present; otherwise it builds the
// payload, stores it and serves it.
func (h *DashboardHandler) cached(c fiber.Ctx, key, what string, build func() (any, error)) error {
	data, err := h.fetch(c, key, build)
	if err != nil {
		return serviceError(c, err, what)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Send(data)
}

// fetch returns the encoded payload for key, building and storing it on a
// miss. Cache failures are logged and never fail the request.
func (h *DashboardHandler) fetch(c fiber.Ctx, key string, build func() (any, error)) ([]byte, error) {
	data, err := h.cache.Get(c.Context(), key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if data != nil {
		Metrics.CacheHits.Inc()
		return data, nil
	}
	if h.cache.Enabled() {
		Metrics.CacheMisses.Inc()
	}

	v, err := build()
	if err != nil {
		return nil, err
	}

	data, err = h.cache.Set(c.Context(), key, v)
	if data == nil {
		return nil, err
	}
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return data, nil
}

// Summary handles GET /api/summary. The cached payload outlives reloads of
// unchanged data, so computedAt is stamped from the current snapshot.
func (h *DashboardHandler) Summary(c fiber.Ctx) error {
	snap, err := h.svc.Snapshot()
	if err != nil {
		return serviceError(c, err, "load summary")
	}
	data, err := h.fetch(c, service.SummaryKey(snap.Fingerprint), func() (any, error) {
		return snap.Summary, nil
	})
	if err != nil {
		return serviceError(c, err, "load summary")
	}

	var summary model.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return serviceError(c, err, "load summary")
	}
	summary.ComputedAt = snap.Summary.ComputedAt
	return c.JSON(summary)
}

// Users handles GET /api/users?sort=views|likes|engagement|score
func (h *DashboardHandler) Users(c fiber.Ctx) error {
	users, err := h.svc.Users(fiber.Query[string](c, "sort"))
	if err != nil {
		return serviceError(c, err, "list users")
	}
	return c.JSON(fiber.Map{
		"users": users,
		"count": len(users),
	})
}

// User handles GET /api/users/:name
func (h *DashboardHandler) User(c fiber.Ctx) error {
	name, errMsg := middleware.ValidateDisplayName(c.Params("name"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_NAME", errMsg)
	}

	profile, err := h.svc.User(name)
	if err != nil {
		return serviceError(c, err, "load user")
	}
	return c.JSON(profile)
}

// Rankings handles GET /api/rankings?by=views|likes|engagement|score&limit=N
func (h *DashboardHandler) Rankings(c fiber.Ctx) error {
	var q service.RankingQuery
	if err := c.Bind().Query(&q); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_QUERY", "Malformed query parameters")
	}
	q.Normalize()

	snap, err := h.svc.Snapshot()
	if err != nil {
		return serviceError(c, err, "load rankings")
	}
	return h.cached(c, service.RankingsKey(snap.Fingerprint, q.By, q.Limit), "load rankings", func() (any, error) {
		users, err := snap.Rankings(q)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"by": q.By, "users": users}, nil
	})
}

// Videos handles GET /api/videos with filter, sort and page parameters.
func (h *DashboardHandler) Videos(c fiber.Ctx) error {
	var q service.VideoQuery
	if err := c.Bind().Query(&q); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_QUERY", "Malformed query parameters")
	}

	page, err := h.svc.Videos(q)
	if err != nil {
		return serviceError(c, err, "list videos")
	}
	return c.JSON(page)
}

// Accounts handles GET /api/accounts
func (h *DashboardHandler) Accounts(c fiber.Ctx) error {
	snap, err := h.svc.Snapshot()
	if err != nil {
		return serviceError(c, err, "load accounts")
	}
	return h.cached(c, service.AccountsKey(snap.Fingerprint), "load accounts", func() (any, error) {
		reports := snap.Accounts()
		return fiber.Map{"accounts": reports, "count": len(reports)}, nil
	})
}
