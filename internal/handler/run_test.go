package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/zaheerkhan4077/YTBNICHES/internal/model"
	"github.com/zaheerkhan4077/YTBNICHES/internal/service"
	"github.com/zaheerkhan4077/YTBNICHES/internal/youtube"
)

func TestMain(m *testing.M) {
	// Collectors register against the default registry, once per process.
	InitMetrics(nil, service.NewCacheService("", time.Minute), youtube.NewQuotaTracker(10000))
	os.Exit(m.Run())
}

// stubPlatform serves canned trending and channel data.
type stubPlatform struct {
	trending []model.VideoRecord
	channels map[string]model.ChannelRecord
}

func (s *stubPlatform) SearchIDs(_ context.Context, _, _ string, _ int, _ string) ([]string, error) {
	return nil, nil
}

func (s *stubPlatform) VideosByID(_ context.Context, _ []string) ([]model.VideoRecord, error) {
	return nil, nil
}

func (s *stubPlatform) Trending(_ context.Context, _ string, max int) ([]model.VideoRecord, error) {
	if len(s.trending) > max {
		return s.trending[:max], nil
	}
	return s.trending, nil
}

func (s *stubPlatform) ChannelsByID(_ context.Context, ids []string) ([]model.ChannelRecord, error) {
	var out []model.ChannelRecord
	for _, id := range ids {
		if ch, ok := s.channels[id]; ok {
			out = append(out, ch)
		}
	}
	return out, nil
}

func newTrendingApp(stub *stubPlatform) *fiber.App {
	h := NewRunHandler(service.NewAggregateService(stub), service.NewFilterService(stub), nil)
	app := fiber.New()
	app.Get("/api/trending", h.Trending)
	return app
}

func subs(n int64) *int64 { return &n }

func TestTrending_AppliesChannelFilters(t *testing.T) {
	stub := &stubPlatform{
		trending: []model.VideoRecord{
			{ID: "v1", ChannelID: "UCus", ViewCount: 100},
			{ID: "v2", ChannelID: "UCfr", ViewCount: 200},
			{ID: "v3", ChannelID: "UCsmall", ViewCount: 300},
		},
		channels: map[string]model.ChannelRecord{
			"UCus":    {ChannelID: "UCus", Country: "US", SubscriberCount: subs(5000)},
			"UCfr":    {ChannelID: "UCfr", Country: "FR", SubscriberCount: subs(5000)},
			"UCsmall": {ChannelID: "UCsmall", Country: "US", SubscriberCount: subs(10)},
		},
	}
	app := newTrendingApp(stub)

	req := httptest.NewRequest(http.MethodGet,
		"/api/trending?region=US&strictRegion=true&minSubscribers=1000", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body model.RunResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}

	// v2 is dropped by region (FR), v3 by subscribers (10 < 1000).
	if len(body.Records) != 1 || body.Records[0].ID != "v1" {
		t.Fatalf("records = %+v, want only v1", body.Records)
	}
	if body.Filters.RemovedByRegion != 1 {
		t.Errorf("RemovedByRegion = %d, want 1", body.Filters.RemovedByRegion)
	}
	if body.Filters.RemovedBySubscribers != 1 {
		t.Errorf("RemovedBySubscribers = %d, want 1", body.Filters.RemovedBySubscribers)
	}
	if body.Mode != model.ModeTrending {
		t.Errorf("mode = %q, want %q", body.Mode, model.ModeTrending)
	}
}

func TestTrending_StrictRegionRequiresRegion(t *testing.T) {
	app := newTrendingApp(&stubPlatform{})

	req := httptest.NewRequest(http.MethodGet, "/api/trending?strictRegion=true", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
