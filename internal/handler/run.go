package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/zaheerkhan4077/YTBNICHES/internal/middleware"
	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
	"github.com/zaheerkhan4077/YTBNICHES/internal/repository"
	"github.com/zaheerkhan4077/YTBNICHES/internal/service"
	"github.com/zaheerkhan4077/YTBNICHES/internal/youtube"
)

type RunHandler struct {
	agg    *service.AggregateService
	filter *service.FilterService
	runs   *repository.RunRepo
}

func NewRunHandler(agg *service.AggregateService, filter *service.FilterService, runs *repository.RunRepo) *RunHandler {
	return &RunHandler{agg: agg, filter: filter, runs: runs}
}

// Submit handles POST /api/runs
func (h *RunHandler) Submit(c fiber.Ctx) error {
	var req model.RunRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	keywords, errMsg := middleware.ValidateKeywordList(req.Keywords)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	region, errMsg := middleware.ValidateRegion(req.Region)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	days := req.Days
	if days == 0 {
		days = middleware.DefaultDays
	}
	if days < 1 || days > middleware.MaxDays {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "days must be between 1 and 365")
	}

	perKeyword := req.PerKeywordCap
	if perKeyword == 0 {
		perKeyword = middleware.DefaultPerKw
	}
	if perKeyword < 1 || perKeyword > middleware.MaxPerKeyword {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "perKeywordCap must be between 1 and 25")
	}

	if req.MinViews < 0 || req.MinSubscribers < 0 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "thresholds must not be negative")
	}

	if req.StrictRegion && region == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "strictRegion requires a region")
	}

	start := time.Now()
	result, err := h.agg.RunKeywords(c.Context(), model.KeywordParams{
		Keywords:      keywords,
		Days:          days,
		Region:        region,
		PerKeywordCap: perKeyword,
	})
	if err != nil {
		return upstreamError(c, err, "Aggregation run failed")
	}

	records, report, err := h.filter.JoinAndFilter(c.Context(), result.Records, model.FilterOptions{
		MinViews:       req.MinViews,
		StrictRegion:   req.StrictRegion,
		Region:         region,
		MinSubscribers: req.MinSubscribers,
	})
	if err != nil {
		return upstreamError(c, err, "Channel lookup failed")
	}

	took := time.Since(start)
	Metrics.RunDuration.Observe(took.Seconds())
	Metrics.RunsTotal.WithLabelValues(model.ModeKeywords).Inc()

	resp := model.RunResponse{
		RunID:    uuid.NewString(),
		Mode:     model.ModeKeywords,
		Records:  records,
		Filters:  report,
		Warnings: result.Warnings,
		TookMs:   took.Milliseconds(),
	}
	if req.GroupByChannel {
		resp.Channels = service.GroupByChannel(records)
	}

	h.record(c, model.Run{
		ID:                   resp.RunID,
		Mode:                 model.ModeKeywords,
		Region:               region,
		Keywords:             keywords,
		Days:                 days,
		ResultCount:          len(records),
		RemovedByMinViews:    report.RemovedByMinViews,
		RemovedByRegion:      report.RemovedByRegion,
		RemovedBySubscribers: report.RemovedBySubscribers,
		DurationMs:           took.Milliseconds(),
	})

	return c.JSON(resp)
}

// Trending handles GET /api/trending
func (h *RunHandler) Trending(c fiber.Ctx) error {
	region, errMsg := middleware.ValidateRegion(fiber.Query[string](c, "region"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	limit, errMsg := middleware.ValidateTrendingCap(fiber.Query[string](c, "cap"))
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

	start := time.Now()
	result, err := h.agg.RunTrending(c.Context(), model.TrendingParams{
		Region: region,
		Cap:    limit,
	})
	if err != nil {
		return upstreamError(c, err, "Trending fetch failed")
	}

	records, report, err := h.filter.JoinAndFilter(c.Context(), result.Records, model.FilterOptions{
		MinViews:       minViews,
		StrictRegion:   strictRegion,
		Region:         region,
		MinSubscribers: minSubs,
	})
	if err != nil {
		return upstreamError(c, err, "Channel lookup failed")
	}

	took := time.Since(start)
	Metrics.RunDuration.Observe(took.Seconds())
	Metrics.RunsTotal.WithLabelValues(model.ModeTrending).Inc()

	resp := model.RunResponse{
		RunID:   uuid.NewString(),
		Mode:    model.ModeTrending,
		Records: records,
		Filters: report,
		TookMs:  took.Milliseconds(),
	}

	h.record(c, model.Run{
		ID:                   resp.RunID,
		Mode:                 model.ModeTrending,
		Region:               region,
		ResultCount:          len(records),
		RemovedByMinViews:    report.RemovedByMinViews,
		RemovedByRegion:      report.RemovedByRegion,
		RemovedBySubscribers: report.RemovedBySubscribers,
		DurationMs:           took.Milliseconds(),
	})

	return c.JSON(resp)
}

// History handles GET /api/runs
func (h *RunHandler) History(c fiber.Ctx) error {
	if h.runs == nil {
		return c.JSON(fiber.Map{"runs": []model.Run{}})
	}
	limit := fiber.Query[int](c, "limit", 20)
	runs, err := h.runs.ListRecent(c.Context(), limit)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch run history")
	}
	return c.JSON(fiber.Map{"runs": runs})
}

// record persists the run best-effort. A history write failure never
// fails the run itself.
func (h *RunHandler) record(c fiber.Ctx, run model.Run) {
	if h.runs == nil {
		return
	}
	if err := h.runs.Insert(c.Context(), &run); err != nil {
		middleware.Logger.Warn().Err(err).Str("run_id", run.ID).Msg("failed to record run")
	}
}

// upstreamError maps pipeline failures to API errors. A failed metadata
// batch fails the whole run with no partial results, so platform errors
// surface as 502.
func upstreamError(c fiber.Ctx, err error, msg string) error {
	if c.Context().Err() != nil {
		return middleware.ErrorResponse(c, fiber.StatusRequestTimeout, "TIMEOUT", "Request cancelled")
	}
	var apiErr *youtube.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusForbidden {
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "QUOTA_EXCEEDED", "Platform quota exhausted or key rejected")
	}
	return middleware.ErrorResponse(c, fiber.StatusBadGateway, "UPSTREAM_ERROR", msg)
}
