package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"

	post_service "blog-post-service/internal/application/service/post"
	"blog-post-service/internal/application/validation"
	"blog-post-service/internal/infrastructure/config"
	delivery_grpc "blog-post-service/internal/infrastructure/inbound/grpc"
	delivery_http "blog-post-service/internal/infrastructure/inbound/http"
	post_http "blog-post-service/internal/infrastructure/inbound/http/post"
	metrics_server "blog-post-service/internal/infrastructure/inbound/metrics"
	"blog-post-service/internal/infrastructure/logger"
	prometheus_metrics "blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	category_postgres "blog-post-service/internal/infrastructure/outbound/repository/category/postgres"
	post_postgres "blog-post-service/internal/infrastructure/outbound/repository/post/postgres"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres"
	tag_postgres "blog-post-service/internal/infrastructure/outbound/repository/tag/postgres"
	user_postgres "blog-post-service/internal/infrastructure/outbound/repository/user/postgres"
	"blog-post-service/internal/infrastructure/outbound/storage/image"
)

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	if err := postgres.Migrate(cfg.Database, log); err != nil {
		log.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.Database.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Database.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	metrics.SetServiceHealth(true)

	images, err := image.NewOSFileStore(cfg.Storage.RootDir, log, metrics)
	if err != nil {
		log.Error("Failed to prepare image storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	unitOfWork := postgres.NewPostgresUOW(pool, log, metrics)
	postRepo := post_postgres.NewPostRepository(pool, log, metrics)
	tagRepo := tag_postgres.NewTagRepository(pool, log, metrics)
	categoryRepo := category_postgres.NewCategoryRepository(pool, log, metrics)
	userRepo := user_postgres.NewUserRepository(pool, log, metrics)

	postValidator := validation.NewPostValidator(validator.New(), cfg.Storage.MaxImageSizeKB)

	managementService := post_service.NewManagementService(postRepo, tagRepo, categoryRepo, userRepo, images, unitOfWork, postValidator, log, metrics)
	publicService := post_service.NewPublicService(postRepo, tagRepo, log)

	api := post_http.NewAPI(managementService, publicService, log)
	httpServer := delivery_http.NewServer(api, cfg.Auth.JWTSecret, cfg.HTTPServer.Address, cfg.HTTPServer.Port, log, metrics)
	grpcServer := delivery_grpc.NewServer(cfg.GRPCServer.Address, cfg.GRPCServer.Port, log, metrics)
	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	httpDone := make(chan bool, 1)
	grpcDone := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		httpDone <- true
	}()

	go func() {
		if err := grpcServer.Run(); err != nil {
			log.Error("gRPC server error", slog.String("error", err.Error()))
		}
		grpcDone <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := grpcServer.Shutdown(); err != nil {
		log.Error("gRPC server shutdown error", slog.String("error", err.Error()))
	}

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-httpDone
	<-grpcDone
	<-metricsDone

	log.Info("Server exited")
}
