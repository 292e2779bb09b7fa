package handler

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/zaheerkhan4077/YTBNICHES/internal/middleware"
	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
	"github.com/zaheerkhan4077/YTBNICHES/internal/service"
)

type ExportHandler struct {
	agg    *service.AggregateService
	filter *service.FilterService
}

func NewExportHandler(agg *service.AggregateService, filter *service.FilterService) *ExportHandler {
	return &ExportHandler{agg: agg, filter: filter}
}

// Export handles GET /api/export.csv
// Accepts the same parameters as a run, re-executes the pipeline (the
// response cache makes repeats cheap) and streams the result as CSV.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	mode := fiber.Query[string](c, "mode", model.ModeKeywords)
	if mode != model.ModeKeywords && mode != model.ModeTrending {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "mode must be keywords or trending")
	}

	region, errMsg := middleware.ValidateRegion(fiber.Query[string](c, "region"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	minViews, errMsg := middleware.ValidateMinViews(fiber.Query[string](c, "minViews"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	minSubs, errMsg := middleware.ValidateMinSubscribers(fiber.Query[string](c, "minSubscribers"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	strictRegion := fiber.Query[bool](c, "strictRegion")
	if strictRegion && region == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "strictRegion requires a region")
	}

	var result *model.RunResult
	var err error
	switch mode {
	case model.ModeKeywords:
		keywords, errMsg := middleware.ValidateKeywords(fiber.Query[string](c, "keywords"))
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		days, errMsg := middleware.ValidateDays(fiber.Query[string](c, "days"))
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		perKeyword, errMsg := middleware.ValidatePerKeyword(fiber.Query[string](c, "perKeywordCap"))
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		result, err = h.agg.RunKeywords(c.Context(), model.KeywordParams{
			Keywords:      keywords,
			Days:          days,
			Region:        region,
			PerKeywordCap: perKeyword,
		})
	case model.ModeTrending:
		limit, errMsg := middleware.ValidateTrendingCap(fiber.Query[string](c, "cap"))
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		result, err = h.agg.RunTrending(c.Context(), model.TrendingParams{
			Region: region,
			Cap:    limit,
		})
	}
	if err != nil {
		return upstreamError(c, err, "Export run failed")
	}

	records, _, err := h.filter.JoinAndFilter(c.Context(), result.Records, model.FilterOptions{
		MinViews:       minViews,
		StrictRegion:   strictRegion,
		Region:         region,
		MinSubscribers: minSubs,
	})
	if err != nil {
		return upstreamError(c, err, "Channel lookup failed")
	}

	var buf bytes.Buffer
	if err := service.WriteCSV(&buf, records); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to encode CSV")
	}

	filename := "videos_" + time.Now().UTC().Format("20060102_150405") + ".csv"
	c.Set("Content-Type", "text/csv; charset=utf-8")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(buf.Bytes())
}
