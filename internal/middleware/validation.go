package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/zaheerkhan4077/YTBNICHES/internal/region"
)

// Input limits for run parameters.
const (
	MaxKeywords     = 20
	MaxKeywordLen   = 100
	MaxDays         = 365
	MaxPerKeyword   = 25
	MaxTrendingCap  = 50
	DefaultDays     = 7
	DefaultPerKw    = 10
	DefaultTrending = 20
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateKeywords splits a comma-separated keyword string, trims entries
// and drops blanks. Order is preserved.
func ValidateKeywords(raw string) ([]string, string) {
	return ValidateKeywordList(strings.Split(raw, ","))
}

// ValidateKeywordList trims and checks an already-split keyword list.
func ValidateKeywordList(parts []string) ([]string, string) {
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if len(p) > MaxKeywordLen {
			return nil, "keyword must be at most 100 characters"
		}
		keywords = append(keywords, p)
	}
	if len(keywords) == 0 {
		return nil, "at least one keyword is required"
	}
	if len(keywords) > MaxKeywords {
		return nil, "at most 20 keywords per run"
	}
	return keywords, ""
}

// ValidateRegion checks a region code against the country catalog.
// Empty input is allowed and means no region.
func ValidateRegion(code string) (string, string) {
	code = region.Normalize(code)
	if code == "" {
		return "", ""
	}
	if !region.IsValid(code) {
		return "", "unknown region code"
	}
	return code, ""
}

// ValidateDays parses the lookback window in days.
func ValidateDays(raw string) (int, string) {
	if raw == "" {
		return DefaultDays, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "days must be an integer"
	}
	if n < 1 || n > MaxDays {
		return 0, "days must be between 1 and 365"
	}
	return n, ""
}

// ValidatePerKeyword parses the per-keyword result cap.
func ValidatePerKeyword(raw string) (int, string) {
	if raw == "" {
		return DefaultPerKw, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "maxPerKeyword must be an integer"
	}
	if n < 1 || n > MaxPerKeyword {
		return 0, "maxPerKeyword must be between 1 and 25"
	}
	return n, ""
}

// ValidateTrendingCap parses the trending result cap.
func ValidateTrendingCap(raw string) (int, string) {
	if raw == "" {
		return DefaultTrending, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "cap must be an integer"
	}
	if n < 1 || n > MaxTrendingCap {
		return 0, "cap must be between 1 and 50"
	}
	return n, ""
}

// ValidateMinViews parses a non-negative view threshold.
func ValidateMinViews(raw string) (int64, string) {
	if raw == "" {
		return 0, ""
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, "minViews must be an integer"
	}
	if n < 0 {
		return 0, "minViews must not be negative"
	}
	return n, ""
}

// ValidateMinSubscribers parses a non-negative subscriber threshold.
func ValidateMinSubscribers(raw string) (int64, string) {
	if raw == "" {
		return 0, ""
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, "minSubscribers must be an integer"
	}
	if n < 0 {
		return 0, "minSubscribers must not be negative"
	}
	return n, ""
}
