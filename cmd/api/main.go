package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Charles-Okoeguale/smart-link/internal/clicks"
	"github.com/Charles-Okoeguale/smart-link/internal/config"
	"github.com/Charles-Okoeguale/smart-link/internal/geo"
	"github.com/Charles-Okoeguale/smart-link/internal/handler"
	"github.com/Charles-Okoeguale/smart-link/internal/logger"
	"github.com/Charles-Okoeguale/smart-link/internal/queue/sqs"
	"github.com/Charles-Okoeguale/smart-link/internal/registry"
	"github.com/Charles-Okoeguale/smart-link/internal/registry/memory"
	registryredis "github.com/Charles-Okoeguale/smart-link/internal/registry/redis"
	"github.com/Charles-Okoeguale/smart-link/internal/repository/clickhouse"
	"github.com/Charles-Okoeguale/smart-link/internal/service"
	"github.com/Charles-Okoeguale/smart-link/internal/shortcode"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort),
		zap.String("registry_backend", cfg.Registry.Backend))

	ctx := context.Background()

	// Initialize link registry
	linkRegistry, err := newLinkRegistry(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to create link registry", zap.Error(err))
	}
	defer func() {
		if err := linkRegistry.Close(); err != nil {
			log.Error("Failed to close link registry", zap.Error(err))
		}
	}()

	// Initialize SQS client for click publishing
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	// Initialize ClickHouse client for the analytics read path
	clickhouseClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
	if err != nil {
		log.Fatal("Failed to create ClickHouse client", zap.Error(err))
	}
	defer func(clickhouseClient *clickhouse.Client) {
		if err := clickhouseClient.Close(); err != nil {
			log.Error("Failed to close ClickHouse client", zap.Error(err))
		}
	}(clickhouseClient)

	repo := clickhouse.NewRepository(clickhouseClient, log)

	// Initialize short code generator
	codes, err := shortcode.NewGenerator()
	if err != nil {
		log.Fatal("Failed to create short code generator", zap.Error(err))
	}

	// Initialize click recorder
	recorder := clicks.NewRecorder(linkRegistry, sqsClient, log)

	// Initialize link service
	linkService := service.NewLinkService(
		linkRegistry,
		recorder,
		repo,
		codes,
		cfg.Service.BaseURL,
		time.Duration(cfg.Recording.TimeoutSec)*time.Second,
		log,
	)

	// Initialize geolocation collaborator
	locator := geo.NewClient(cfg.Geo, log)

	// Initialize handler
	h := handler.NewHandler(linkService, locator, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}

// newLinkRegistry selects the registry backend from configuration
func newLinkRegistry(ctx context.Context, cfg *config.Config, log *zap.Logger) (registry.LinkRegistry, error) {
	switch cfg.Registry.Backend {
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return registryredis.NewRegistry(ctx, client, log)
	case "memory":
		return memory.NewRegistry(log), nil
	default:
		return nil, fmt.Errorf("unknown registry backend: %q (supported: memory, redis)", cfg.Registry.Backend)
	}
}
