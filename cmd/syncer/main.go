package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"catalog_syncer/internal/catalog"
	"catalog_syncer/internal/config"
	"catalog_syncer/internal/gateway"
	"catalog_syncer/internal/httpapi"
	"catalog_syncer/internal/lock"
	"catalog_syncer/internal/publisher"
	"catalog_syncer/internal/scheduler"
	"catalog_syncer/internal/service"
	"catalog_syncer/internal/source/fixture"
	"catalog_syncer/internal/source/marketplace"
	"catalog_syncer/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: without it the entity lock degrades to an
	// in-process mutex and category lookups skip the cache.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Error("failed to ping redis", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to redis")
	}

	// RabbitMQ is optional: without it changes and alerts are only stored.
	var pub service.Publisher
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:              cfg.RabbitMQ.URL,
			Exchange:         cfg.RabbitMQ.Exchange,
			ChangeRoutingKey: cfg.RabbitMQ.ChangeRoutingKey,
			AlertRoutingKey:  cfg.RabbitMQ.AlertRoutingKey,
			QueueName:        cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	scanStateStore := postgres.NewScanStateStore(db)
	productStore := postgres.NewProductStore(db)
	webhookStore := postgres.NewWebhookStore(db)
	alertStore := postgres.NewAlertStore(db)
	txManager := postgres.NewTransactionManager(db)

	gw := gateway.New(cfg.Gateway, cfg.API.Retry, logger)

	var src service.CatalogSource
	switch cfg.API.Source {
	case "marketplace":
		src = marketplace.New(marketplace.Config{
			BaseURL:     cfg.API.BaseURL,
			AccessToken: cfg.API.AccessToken,
			PageSize:    cfg.API.PageSize,
			BatchSize:   cfg.Sync.DetailBatchSize,
			Timeout:     cfg.API.Timeout,
		}, gw, logger)
	case "fixture":
		src = fixture.New(0, cfg.API.PageSize)
	default:
		logger.Error("unknown api source", "source", cfg.API.Source)
		os.Exit(1)
	}

	categories := catalog.NewResolver(src, rdb, logger)

	alerts := service.NewAlertEmitter(
		productStore,
		alertStore,
		pub,
		cfg.Alerts.LowStockThreshold,
		cfg.Alerts.Cooldown,
		logger,
	)

	reconciler := service.NewReconciler(
		productStore,
		txManager,
		categories,
		alerts,
		pub,
		logger,
	)

	scanner := service.NewScanner(
		src,
		scanStateStore,
		productStore,
		reconciler,
		alerts,
		gw,
		cfg.Sync.DetailBatchSize,
		cfg.Sync.DetailConcurrency,
		logger,
	)

	var locker service.EntityLocker
	if rdb != nil {
		locker = lock.NewRedis(rdb, cfg.Webhook.LockTTL)
	} else {
		locker = lock.NewLocal()
	}

	webhooks := service.NewWebhookProcessor(
		ctx,
		webhookStore,
		scanStateStore,
		src,
		reconciler,
		locker,
		cfg.Webhook.Concurrency,
		logger,
	)

	server := httpapi.NewServer(scanner, webhooks, gw, alertStore, logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: server.Handler(),
	}

	sched := scheduler.New(scanner, webhooks, cfg.Sync, cfg.Webhook, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	logger.Info("starting catalog syncer",
		"source", src.ID(),
		"interval", cfg.Sync.Interval,
		"users", cfg.Sync.Users,
	)

	if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("scheduler error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown error", "error", err)
	}
	webhooks.Drain()
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
