package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/cannaconnect/cannaconnect-api/internal/auth"
	"github.com/cannaconnect/cannaconnect-api/internal/config"
	"github.com/cannaconnect/cannaconnect-api/internal/database"
	"github.com/cannaconnect/cannaconnect-api/internal/handlers"
	"github.com/cannaconnect/cannaconnect-api/internal/logger"
	"github.com/cannaconnect/cannaconnect-api/internal/metrics"
	"github.com/cannaconnect/cannaconnect-api/internal/middleware"
	"github.com/cannaconnect/cannaconnect-api/internal/repository"
	"github.com/cannaconnect/cannaconnect-api/internal/security"
	"github.com/cannaconnect/cannaconnect-api/internal/services"
	"github.com/cannaconnect/cannaconnect-api/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		ServiceName: "cannaconnect-api",
	}); err != nil {
		panic(err)
	}
	log := logger.L()
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() && cfg.JWT.Secret == config.DefaultJWTSecret {
		log.Fatal("JWT_SECRET must be set in production")
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	store, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// Initialize services
	uow := repository.NewUnitOfWork(db)
	sanitizer := security.NewTextSanitizer()
	tokens := auth.NewTokenManager(cfg.JWT)

	svc := handlers.Services{
		Auth:        services.NewAuthService(uow, tokens, auth.NewLogMailer(), collector, cfg.PublicBaseURL, cfg.AdminEmails),
		Users:       services.NewUserService(uow, sanitizer),
		Companies:   services.NewCompanyService(uow, sanitizer),
		Connections: services.NewConnectionService(uow),
		Jobs:        services.NewJobService(uow, store, sanitizer, collector),
		Media:       services.NewMediaService(uow, store, collector),
		Ads:         services.NewAdService(uow, sanitizer),
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		PerMinute: cfg.RateLimit.AuthPerMinute,
		Burst:     cfg.RateLimit.AuthBurst,
	})
	defer limiter.Stop()

	r := handlers.NewRouter(handlers.RouterConfig{
		MaxUploadBytes: cfg.MaxUploadMB << 20,
		Recorder:       collector,
		Gatherer:       registry,
		AuthLimiter:    limiter,
	}, svc)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server starting", cfg.LogFields()...)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
