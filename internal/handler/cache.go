package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/zaheerkhan4077/YTBNICHES/internal/middleware"
	"github.com/zaheerkhan4077/YTBNICHES/internal/service"
)

type CacheHandler struct {
	cache *service.CacheService
}

func NewCacheHandler(cache *service.CacheService) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// Invalidate handles POST /api/cache/invalidate
// Drops every cached platform response so the next run hits the API
// fresh (force refresh).
func (h *CacheHandler) Invalidate(c fiber.Ctx) error {
	deleted, err := h.cache.InvalidateAll(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to invalidate cache")
	}

	middleware.Logger.Info().Int("deleted", deleted).Msg("cache invalidated")
	return c.JSON(fiber.Map{"deleted": deleted})
}
