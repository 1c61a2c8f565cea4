package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/andytrench/history-media-hunter/internal/config"
	"github.com/andytrench/history-media-hunter/internal/db"
	"github.com/andytrench/history-media-hunter/internal/handler"
	"github.com/andytrench/history-media-hunter/internal/middleware"
	"github.com/andytrench/history-media-hunter/internal/repository"
	"github.com/andytrench/history-media-hunter/internal/router"
	"github.com/andytrench/history-media-hunter/internal/service"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "curriculum-api")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	gradeRepo := repository.NewGradeRepo(pool)
	progressRepo := repository.NewProgressRepo(pool)
	reportRepo := repository.NewReportRepo(pool)
	userRepo := repository.NewUserRepo(pool)

	catalogSvc := service.NewCatalogService(gradeRepo, cache)
	catalogSvc.OnCacheHit = handler.Metrics.CacheHits.Inc
	catalogSvc.OnCacheMiss = handler.Metrics.CacheMisses.Inc
	progressSvc := service.NewProgressService(progressRepo, userRepo)
	moderationSvc := service.NewModerationService(reportRepo, gradeRepo, cache)
	userSvc := service.NewUserService(userRepo)

	h := &router.Handlers{
		Grade:    handler.NewGradeHandler(catalogSvc),
		Progress: handler.NewProgressHandler(progressSvc),
		Report:   handler.NewReportHandler(moderationSvc),
		User:     handler.NewUserHandler(userSvc),
		Health:   handler.NewHealthHandler(pool, cache.Client()),
	}

	app := fiber.New(fiber.Config{
		AppName:      "Curriculum Catalog API",
		ServerHeader: "curriculum-api",
	})

	router.Setup(app, h, cfg.CORSOrigins)

	log.Printf("curriculum catalog backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	log.Fatal(app.Listen(":" + cfg.Port))
}
