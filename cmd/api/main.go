package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dunamismax/cardframe/internal/api"
	"github.com/dunamismax/cardframe/internal/config"
	"github.com/dunamismax/cardframe/internal/queue"
	"github.com/dunamismax/cardframe/internal/ratelimit"
	"github.com/dunamismax/cardframe/internal/storage"
	"github.com/dunamismax/cardframe/internal/store"
	"github.com/dunamismax/cardframe/internal/telemetry"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.Lmsgprefix)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TraceConfig{
		ServiceName:    "cardframe-api",
		ServiceVersion: cfg.Telemetry.ServiceVersion,
		Exporter:       cfg.Telemetry.Exporter,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure:   cfg.Telemetry.OTLPInsecure,
		SampleRatio:    cfg.Telemetry.SampleRatio,
	}, logger)
	cancel()
	if err != nil {
		logger.Fatalf("tracing setup failed: %v", err)
	}

	queueClient := queue.NewClient(cfg.Queue.RedisClientOpt(), cfg.Queue.Name)
	defer func() {
		if err := queueClient.Close(); err != nil {
			logger.Printf("queue client close error: %v", err)
		}
	}()

	jobStore, closeStore := buildJobStore(cfg, logger)
	defer closeStore()

	opts := api.Options{
		PresignTTL:            cfg.API.PresignTTL,
		RateLimitUserIDHeader: cfg.RateLimit.UserIDHeader,
	}

	storageClient, err := storage.NewClient(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Printf("object storage unavailable: %v", err)
	} else {
		bucketCtx, bucketCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := storageClient.EnsureBucket(bucketCtx); err != nil {
			logger.Printf("bucket bootstrap failed (s3 uploads disabled): %v", err)
		} else {
			opts.Storage = storageClient
		}
		bucketCancel()
	}

	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Queue.RedisAddr,
			Password: cfg.Queue.RedisPassword,
			DB:       cfg.Queue.RedisDB,
		})
		limiter, err := ratelimit.NewRedisTokenBucket(redisClient, ratelimit.Config{
			Capacity: cfg.RateLimit.Capacity,
			Window:   cfg.RateLimit.Window,
		})
		if err != nil {
			logger.Fatalf("rate limiter setup failed: %v", err)
		}
		opts.RateLimiter = limiter
	}

	app := api.NewServer(logger, queueClient, jobStore, opts)

	httpServer := &http.Server{
		Addr:         cfg.API.Addr,
		Handler:      app.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Printf("listening on %s", cfg.API.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Println("shutting down")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Printf("tracing shutdown failed: %v", err)
	}
}

func buildJobStore(cfg config.Config, logger *log.Logger) (store.JobStore, func()) {
	if cfg.Database.DSN == "" {
		logger.Printf("using in-memory job store")
		return store.NewMemoryJobStore(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := store.NewPostgresJobStore(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatalf("postgres job store setup failed: %v", err)
	}
	return pg, func() {
		if err := pg.Close(); err != nil {
			logger.Printf("job store close error: %v", err)
		}
	}
}
