package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dunamismax/cardframe/internal/config"
	"github.com/dunamismax/cardframe/internal/pipeline"
	"github.com/dunamismax/cardframe/internal/storage"
	"github.com/dunamismax/cardframe/internal/store"
	"github.com/dunamismax/cardframe/internal/telemetry"
	"github.com/dunamismax/cardframe/internal/webhook"
	"github.com/dunamismax/cardframe/internal/worker"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "[worker] ", log.LstdFlags|log.Lmsgprefix)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	shutdownTracing, err := telemetry.SetupTracing(ctx, telemetry.TraceConfig{
		ServiceName:    "cardframe-worker",
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
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Printf("tracing shutdown failed: %v", err)
		}
	}()

	if err := pipeline.Startup(); err != nil {
		logger.Fatalf("renderer startup failed: %v", err)
	}
	defer pipeline.Shutdown()

	opts := worker.Options{
		JobStore: buildJobStore(cfg, logger),
	}

	if cfg.Webhook.SigningSecret != "" {
		opts.WebhookClient = webhook.NewClient(webhook.Config{
			SigningSecret:  cfg.Webhook.SigningSecret,
			Timeout:        cfg.Webhook.Timeout,
			MaxAttempts:    cfg.Webhook.MaxAttempts,
			InitialBackoff: cfg.Webhook.InitialBackoff,
			MaxBackoff:     cfg.Webhook.MaxBackoff,
		})
	}

	storageClient, err := storage.NewClient(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Printf("object storage unavailable (s3 jobs disabled): %v", err)
	} else {
		opts.Storage = storageClient
	}

	srv, err := worker.NewServer(logger, cfg.Queue, cfg.Worker, opts)
	if err != nil {
		logger.Fatalf("worker setup failed: %v", err)
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", srv.MetricsHandler())
		logger.Printf("metrics listening on %s", cfg.Worker.MetricsAddr)
		if err := http.ListenAndServe(cfg.Worker.MetricsAddr, mux); err != nil {
			logger.Printf("metrics server failed: %v", err)
		}
	}()

	logger.Printf(
		"starting worker concurrency=%d max_active_jobs=%d queue=%s redis=%s",
		cfg.Worker.Concurrency,
		cfg.Worker.MaxActiveJobs,
		cfg.Queue.Name,
		cfg.Queue.RedisAddr,
	)

	if err := srv.Run(); err != nil {
		logger.Fatalf("worker failed: %v", err)
	}
}

func buildJobStore(cfg config.Config, logger *log.Logger) store.JobStore {
	if cfg.Database.DSN == "" {
		logger.Printf("using in-memory job store (status updates stay local)")
		return store.NewMemoryJobStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pg, err := store.NewPostgresJobStore(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatalf("postgres job store setup failed: %v", err)
	}
	return pg
}
