package main // Entry point package

import (
	"context"   // Context for shutdown and background workers
	"errors"    // errors.Is for the server close error
	"net/http"  // http.ErrServerClosed
	"os"        // OS signals
	"os/signal" // Signal handling for graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Shutdown timeout

	"github.com/joho/godotenv"                                  // Load .env in development
	"github.com/prometheus/client_golang/prometheus"            // Metrics registry
	"github.com/prometheus/client_golang/prometheus/collectors" // Go and process collectors
	"github.com/robfig/cron/v3"                                 // Reset code purge schedule
	"github.com/sirupsen/logrus"                                // Structured log fields

	"github.com/iliyamo/electramart-api/internal/app"     // Store and logger wiring
	"github.com/iliyamo/electramart-api/internal/config"  // Internal config loader
	"github.com/iliyamo/electramart-api/internal/handler" // Health pingers
	"github.com/iliyamo/electramart-api/internal/mail"    // Reset mail sender
	"github.com/iliyamo/electramart-api/internal/queue"   // Transaction event consumer
	"github.com/iliyamo/electramart-api/internal/router"  // Internal router setup
	"github.com/iliyamo/electramart-api/internal/service" // Business services
)

func main() {
	_ = godotenv.Load()                   // Missing .env is fine outside development
	cfg := config.Load()                  // Load environment config
	logger := app.NewLogger(cfg.LogLevel) // JSON logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, storePing, err := app.OpenStore(ctx, cfg, logger) // Credential and catalogue store
	if err != nil {
		logger.WithError(err).Fatal("store init failed")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.WithError(err).Warn("store close failed")
		}
	}()

	health := map[string]handler.Pinger{"store": storePing}
	rdb := config.NewRedisClient() // nil turns rate limiting and caching off
	if rdb == nil {
		logger.Warn("redis unavailable, rate limiting and caching disabled")
	} else {
		defer rdb.Close()
		health["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	sender := mail.New(config.LoadMailConfig(), logger)
	auth := service.NewAuthService(cfg, store, sender, logger)
	deps := router.Deps{
		Cfg:       cfg,
		RateLimit: config.LoadRateLimitConfig(),
		Cache:     config.LoadCacheConfig(),
		Log:       logger,
		Redis:     rdb,
		Registry:  prometheus.NewRegistry(),
		Health:    health,
		Auth:      auth,
		Catalog:   service.NewCatalogService(store, logger),
		Support:   service.NewSupportService(store, service.NewAMQPPublisher(cfg.AMQPURL), logger),
		Profile:   service.NewProfileService(store, cfg.BcryptCost, logger),
	}
	deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Transaction events are appended to logs/transactions.log
	consumer := &queue.Consumer{URL: cfg.AMQPURL, Dir: "logs", Log: logger}
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.WithError(err).Error("transaction consumer stopped")
		}
	}()

	// Expired reset codes are deleted on a schedule
	c := cron.New()
	if _, err := c.AddFunc(cfg.ResetPurgeSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		n, err := auth.PurgeExpiredResets(jobCtx)
		if err != nil {
			logger.WithError(err).Warn("reset purge failed")
			return
		}
		logger.WithField("deleted", n).Debug("expired reset codes purged")
	}); err != nil {
		logger.WithError(err).Fatalf("invalid RESET_PURGE_SCHEDULE %q", cfg.ResetPurgeSchedule)
	}
	c.Start()

	e := router.New(deps) // Echo instance with every route

	addr := ":" + cfg.Port // Address string with port
	logger.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env, "store": cfg.StoreDriver}).Info("listening")

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) { // Start HTTP server
			logger.WithError(err).Error("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("http shutdown failed")
	}
	<-c.Stop().Done()
}
