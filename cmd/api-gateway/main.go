package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/audit-mgmt-api/api/swagger"
	"github.com/noah-isme/audit-mgmt-api/internal/middleware"
	"github.com/noah-isme/audit-mgmt-api/internal/router"
	"github.com/noah-isme/audit-mgmt-api/pkg/cache"
	"github.com/noah-isme/audit-mgmt-api/pkg/config"
	"github.com/noah-isme/audit-mgmt-api/pkg/database"
	"github.com/noah-isme/audit-mgmt-api/pkg/logger"
)

// @title Audit Management API
// @version 1.0.0
// @description Internal audit management: risk catalog, audit programs, tests, findings and action plans.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db.DB, database.MigrateUp); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logr.Info("migrations applied")
	}

	var (
		redisClient *redis.Client
		limiter     middleware.Allower
	)
	if client, err := cache.NewRedis(ctx, cfg.Redis); err != nil {
		logr.Warn("redis unavailable, cache and login rate limit disabled", zap.Error(err))
	} else {
		redisClient = client
		defer redisClient.Close()
		limiter = redis_rate.NewLimiter(redisClient)
	}

	app, err := build(ctx, cfg, db, redisClient, logr)
	if err != nil {
		return err
	}
	defer app.Shutdown()

	engine := router.New(app.handlers, router.Dependencies{
		Access:       app.access,
		Tokens:       app.tokens,
		LoginLimiter: limiter,
		Metrics:      app.metrics,
		Logger:       logr,
	}, router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		LoginPerMinute: cfg.RateLimit.LoginPerMinute,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env, "evidence_backend", cfg.Evidence.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logr.Info("shutting down", zap.String("signal", sig.String()))
	}

	cancel()
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logr.Info("server stopped")
	return nil
}
