package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Jeanads/trendx-analytics/internal/middleware"
	"github.com/Jeanads/trendx-analytics/internal/model"
	"github.com/Jeanads/trendx-analytics/internal/service"
)

type ResolveHandler struct {
	svc *service.DashboardService
}

func NewResolveHandler(svc *service.DashboardService) *ResolveHandler {
	return &ResolveHandler{svc: svc}
}

// Resolve handles GET /api/resolve?url=X. An unrecognized link is a normal
// result with status "failure", not an error.
func (h *ResolveHandler) Resolve(c fiber.Ctx) error {
	raw, errMsg := middleware.ValidateURL(fiber.Query[string](c, "url"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_URL", errMsg)
	}

	res, err := h.svc.Resolve(raw)
	if err != nil {
		return serviceError(c, err, "resolve link")
	}

	Metrics.ResolveTotal.WithLabelValues(res.Platform.String(), outcome(&res)).Inc()
	return c.JSON(res)
}

// outcome labels a resolution for metrics.
func outcome(res *model.LinkResolution) string {
	switch {
	case res.VideoFound():
		return "video"
	case res.OwnerFound():
		return "owner"
	case res.Status == model.ResolutionSuccess:
		return "platform_only"
	default:
		return "unrecognized"
	}
}
