package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/user/stylegen-service/internal/adapter/chromedp_renderer"
	"github.com/user/stylegen-service/internal/adapter/openai"
	"github.com/user/stylegen-service/internal/adapter/postgres"
	redis_adapter "github.com/user/stylegen-service/internal/adapter/redis"
	"github.com/user/stylegen-service/internal/adapter/scrapingbee"
	"github.com/user/stylegen-service/internal/delivery/http/handler"
	"github.com/user/stylegen-service/internal/delivery/http/router"
	"github.com/user/stylegen-service/internal/ratelimit"
	"github.com/user/stylegen-service/internal/repository"
	"github.com/user/stylegen-service/internal/scraper"
	"github.com/user/stylegen-service/internal/usecase"
	"github.com/user/stylegen-service/pkg/config"
	"github.com/user/stylegen-service/pkg/logger"
	"github.com/user/stylegen-service/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// --- Logger ---
	logger.Init(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	slog.Info("Logger initialized", "level", cfg.LogLevel)

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	ctx := context.Background()

	// --- Database Connections ---
	dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis connection established")

	// --- Renderer backend ---
	var renderer repository.RendererRepository
	switch cfg.RenderBackend {
	case "local":
		renderer, err = chromedp_renderer.New(2, time.Duration(cfg.RenderTimeoutMS)*time.Millisecond)
		if err != nil {
			slog.Error("Unable to start local renderer", "error", err)
			os.Exit(1)
		}
		slog.Info("Using local headless renderer")
	default:
		renderer, err = scrapingbee.New(scrapingbee.Config{
			APIKey:    cfg.ScrapingBeeAPIKey,
			BaseURL:   cfg.ScrapingBeeBaseURL,
			TimeoutMS: cfg.RenderTimeoutMS,
			WaitMS:    cfg.RenderWaitMS,
		})
		if err != nil {
			slog.Error("Unable to construct rendering proxy client", "error", err)
			os.Exit(1)
		}
		slog.Info("Using ScrapingBee rendering proxy")
	}

	// --- Generation provider ---
	provider, err := openai.New(openai.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	if err != nil {
		slog.Error("Unable to construct generation client", "error", err)
		os.Exit(1)
	}

	// --- Repositories ---
	assetRepo := postgres.NewAssetRepo(dbpool)
	logRepo := postgres.NewScrapingLogRepo(dbpool)
	projectRepo := postgres.NewProjectRepo(dbpool)
	renderCache := redis_adapter.NewRenderCache(rdb)

	// --- Use Cases ---
	assetStore := usecase.NewAssetStore(assetRepo)
	inliner := scraper.NewStylesheetInliner(renderer)
	styleScraper := usecase.NewStyleScraper(
		renderer,
		inliner,
		assetStore,
		logRepo,
		projectRepo,
		renderCache,
		time.Duration(cfg.RenderCacheTTLMin)*time.Minute,
	)

	limiter := ratelimit.NewMinInterval(time.Duration(cfg.GenerationMinIntervalSec) * time.Second)
	generator := usecase.NewGenerator(provider, limiter, time.Duration(cfg.GenerationRetryBackoffSec)*time.Second)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(styleScraper, generator)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}
