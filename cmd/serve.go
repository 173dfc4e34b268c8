package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"task-service.com/task-service/internal/auth"
	config "task-service.com/task-service/internal/configs"
	httpapi "task-service.com/task-service/internal/http"
	"task-service.com/task-service/internal/metrics"
	"task-service.com/task-service/internal/ratelimit"
	repository "task-service.com/task-service/internal/repositories"
	"task-service.com/task-service/internal/services"
	"task-service.com/task-service/internal/tracing"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Migrates the schema and starts the task HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		shutdownTracing, err := tracing.Init(ctx, cfg.TracingEndpoint, "task-service", version)
		if err != nil {
			return err
		}

		database, err := config.NewDatabaseClient(cfg.DatabaseDSN, cfg.DatabaseLogLevel)
		if err != nil {
			return err
		}
		if err := config.Migrate(database); err != nil {
			return err
		}

		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		taskRepo := repository.NewTaskRepository(database, cfg.BatchSize, metrics.NewRepository(registry))
		taskService := services.NewTaskService(taskRepo, log)

		limiter, closeLimiter, err := newLimiter(cfg)
		if err != nil {
			return err
		}
		defer closeLimiter()

		if cfg.JWTSecret == "" {
			log.Warn("JWT_SECRET is not set, every task request will be rejected")
		}

		routes := httpapi.RouteConfig{
			Verifier:  auth.NewVerifier(cfg.JWTSecret, cfg.JWTTenantClaim),
			AdminRole: cfg.AdminRole,
			Limiter:   limiter,
			Logger:    log,
		}
		if cfg.EnableMetrics {
			routes.Metrics = metrics.NewHTTP(registry)
			routes.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
		}

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		httpapi.Register(e, httpapi.NewHandler(taskService), routes)

		go func() {
			log.Info("HTTP server listening", zap.String("addr", cfg.AppURL), zap.Int("batch_size", taskRepo.BatchSize()))
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("server stopped", zap.Error(err))
				stop()
			}
		}()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Warn("HTTP server shutdown failed", zap.Error(err))
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}

		log.Info("HTTP server shut down gracefully")
		return nil
	},
}

func newLimiter(cfg config.Config) (ratelimit.Limiter, func(), error) {
	if cfg.RateLimitBackend != "redis" {
		return ratelimit.NewMemoryLimiter(cfg.RateLimit, time.Minute), func() {}, nil
	}

	redisClient, err := config.NewRedisClient(cfg.RedisAddr)
	if err != nil {
		return nil, nil, err
	}

	limiter := ratelimit.NewRedisLimiter(redisClient, cfg.RedisKeyPrefix, cfg.RateLimit, time.Minute)
	return limiter, redisClient.Close, nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
