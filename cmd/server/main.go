package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/zaheerkhan4077/YTBNICHES/internal/config"
	"github.com/zaheerkhan4077/YTBNICHES/internal/db"
	"github.com/zaheerkhan4077/YTBNICHES/internal/handler"
	"github.com/zaheerkhan4077/YTBNICHES/internal/middleware"
	"github.com/zaheerkhan4077/YTBNICHES/internal/repository"
	"github.com/zaheerkhan4077/YTBNICHES/internal/router"
	"github.com/zaheerkhan4077/YTBNICHES/internal/service"
	"github.com/zaheerkhan4077/YTBNICHES/internal/youtube"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "ytbniches-api")

	// Without an API key every run would fail, so refuse to start.
	if cfg.YouTubeAPIKey == "" {
		log.Fatal("YT_API_KEY is required")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL, cfg.CacheTTL)
	defer cache.Close()

	quota := youtube.NewQuotaTracker(cfg.QuotaDailyLimit)
	yt, err := youtube.NewClient(cfg.YouTubeAPIKey, quota)
	if err != nil {
		log.Fatalf("failed to build platform client: %v", err)
	}
	platform := service.NewCachedPlatform(yt, cache)

	agg := service.NewAggregateService(platform)
	filter := service.NewFilterService(platform)
	runs := repository.NewRunRepo(pool)

	// Resets quota counters at UTC midnight.
	worker := service.NewQuotaWorker(quota, time.Minute)
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go worker.Start(workerCtx)

	handler.InitMetrics(pool, cache, quota)

	app := fiber.New(fiber.Config{
		AppName:      "YTBNICHES API",
		ServerHeader: "YTBNICHES",
	})

	h := &router.Handlers{
		Run:    handler.NewRunHandler(agg, filter, runs),
		Export: handler.NewExportHandler(agg, filter),
		Region: handler.NewRegionHandler(),
		Stats:  handler.NewStatsHandler(quota, cache, runs),
		Cache:  handler.NewCacheHandler(cache),
		Health: handler.NewHealthHandler(pool, cache.Client()),
	}
	router.Setup(app, h, cfg.CORSOrigins)

	log.Printf("YTBNICHES backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
