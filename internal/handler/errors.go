package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/Jeanads/trendx-analytics/internal/middleware"
	"github.com/Jeanads/trendx-analytics/internal/service"
)

// serviceError maps service errors to API error responses.
func serviceError(c fiber.Ctx, err error, what string) error {
	switch {
	case errors.Is(err, service.ErrSnapshotNotReady):
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "NOT_READY",
			"Dataset is still loading, try again shortly")
	case errors.Is(err, service.ErrUserNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, service.ErrInvalidQuery):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_QUERY", err.Error())
	default:
		log.Error().Err(err).Str("request_id", middleware.RequestID(c)).Msg(what)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+what)
	}
}
