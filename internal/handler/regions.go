package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/zaheerkhan4077/YTBNICHES/internal/region"
)

type RegionHandler struct{}

func NewRegionHandler() *RegionHandler {
	return &RegionHandler{}
}

// List handles GET /api/regions
func (h *RegionHandler) List(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"regions": region.List()})
}
