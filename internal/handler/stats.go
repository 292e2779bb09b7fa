package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/zaheerkhan4077/YTBNICHES/internal/middleware"
	"github.com/zaheerkhan4077/YTBNICHES/internal/repository"
	"github.com/zaheerkhan4077/YTBNICHES/internal/service"
	"github.com/zaheerkhan4077/YTBNICHES/internal/youtube"
)

type StatsHandler struct {
	quota *youtube.QuotaTracker
	cache *service.CacheService
	runs  *repository.RunRepo
}

func NewStatsHandler(quota *youtube.QuotaTracker, cache *service.CacheService, runs *repository.RunRepo) *StatsHandler {
	return &StatsHandler{quota: quota, cache: cache, runs: runs}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	totals, err := h.runs.Totals(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(fiber.Map{
		"quota": fiber.Map{
			"used":       h.quota.Used(),
			"remaining":  h.quota.Remaining(),
			"dailyLimit": h.quota.DailyLimit(),
		},
		"cache": fiber.Map{
			"hits":   h.cache.Hits(),
			"misses": h.cache.Misses(),
		},
		"runs": totals,
	})
}
