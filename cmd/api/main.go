package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ovh-sniper-api/internal/config"
	"ovh-sniper-api/internal/handler"
	"ovh-sniper-api/internal/notify"
	"ovh-sniper-api/internal/ovh"
	"ovh-sniper-api/internal/repository"
	"ovh-sniper-api/internal/router"
	"ovh-sniper-api/internal/service"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting OVH Sniper API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize snapshot repository based on config
	var repo repository.SnapshotRepository
	switch cfg.Store.Type {
	case "mysql":
		mysqlRepo, err := repository.NewMySQLSnapshotRepository(cfg.Store.DSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		repo = mysqlRepo
		log.Println("MySQL snapshot repository initialized")
	case "redis":
		redisRepo, err := repository.NewRedisSnapshotRepository(repository.RedisSnapshotConfig{
			Addr:     cfg.Store.RedisAddress(),
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
		repo = redisRepo
		log.Println("Redis snapshot repository initialized")
	default: // sqlite
		sqliteRepo, err := repository.NewSQLiteSnapshotRepository(cfg.Store.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		repo = sqliteRepo
		log.Println("SQLite snapshot repository initialized")
	}
	defer repo.Close()

	// Initialize OVH client (optional - sniping is disabled without credentials)
	var api ovh.API
	client, err := ovh.New(cfg.OVH, cfg.Sniper)
	if err != nil {
		log.Printf("Warning: OVH client unavailable: %v", err)
	} else {
		api = client
		log.Println("OVH client initialized")
	}

	// Initialize Telegram notifier (optional)
	var notifier notify.Notifier
	if tg := notify.NewTelegramNotifier(cfg.OVH.TelegramToken, cfg.OVH.TelegramChatID); tg != nil {
		notifier = tg
		log.Println("Telegram notifier initialized")
	}

	// Initialize services
	logs := service.NewLogService(repo)
	queue := service.NewQueueService(repo, logs)
	history := service.NewHistoryService(repo)
	catalog := service.NewCatalogService(repo, api, logs, cfg.OVH.Zone)
	probe := service.NewProbeService(api, logs)
	purchaser := service.NewPurchaseService(api, history, logs, notifier, cfg.OVH.Zone)
	stats := service.NewStatsService(queue, history, catalog)

	// Restore collections from snapshots
	ctx := context.Background()
	for name, load := range map[string]func(context.Context) error{
		"logs":    logs.Load,
		"queue":   queue.Load,
		"history": history.Load,
		"servers": catalog.Load,
	} {
		if err := load(ctx); err != nil {
			log.Fatalf("Failed to load %s snapshot: %v", name, err)
		}
	}
	log.Println("Data loaded from snapshots")

	// Start the acquisition scheduler
	scheduler := service.NewScheduler(queue, purchaser, logs, service.SchedulerConfig{
		TickInterval:  cfg.Sniper.TickInterval,
		MaxAttempts:   cfg.Sniper.MaxAttempts,
		BackoffFactor: cfg.Sniper.BackoffFactor,
	})
	scheduler.Start()

	// Create router
	r := router.New(router.Config{
		Handler:        handler.New(cfg.App.Version),
		QueueHandler:   handler.NewQueueHandler(queue),
		HistoryHandler: handler.NewHistoryHandler(history, logs),
		ServerHandler:  handler.NewServerHandler(catalog, probe),
		LogHandler:     handler.NewLogHandler(logs),
		StatsHandler:   handler.NewStatsHandler(stats),
		AuthHandler:    handler.NewAuthHandler(api, logs, cfg.OVH),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	logs.Info(ctx, "system", "Server started")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
