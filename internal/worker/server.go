package worker

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dunamismax/cardframe/internal/config"
	"github.com/dunamismax/cardframe/internal/domain"
	"github.com/dunamismax/cardframe/internal/pipeline"
	"github.com/dunamismax/cardframe/internal/queue"
	"github.com/dunamismax/cardframe/internal/storage"
	"github.com/dunamismax/cardframe/internal/store"
	"github.com/dunamismax/cardframe/internal/webhook"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Server consumes card:render tasks. Concurrency is bounded twice: asynq's
// own worker pool plus a semaphore capping jobs that hold decoded images in
// memory at once.
type Server struct {
	logger          *log.Logger
	server          *asynq.Server
	sem             chan struct{}
	localProcessor  *pipeline.Processor
	objectProcessor *pipeline.Processor
	webhookClient   webhookSender
	jobStore        store.JobStore
	usageStore      store.UsageStore
	metrics         *metrics
	tracer          trace.Tracer
}

type webhookSender interface {
	Send(ctx context.Context, endpoint string, evt webhook.Event) error
}

type Options struct {
	Storage       *storage.Client
	WebhookClient webhookSender
	JobStore      store.JobStore
	UsageStore    store.UsageStore
}

func NewServer(logger *log.Logger, queueCfg config.QueueConfig, workerCfg config.WorkerConfig, opts Options) (*Server, error) {
	localProcessor, err := pipeline.NewLocalProcessor(workerCfg.LocalOutputDir)
	if err != nil {
		return nil, fmt.Errorf("initialize local processor: %w", err)
	}

	var objectProcessor *pipeline.Processor
	if opts.Storage != nil {
		objectProcessor, err = pipeline.NewObjectStoreProcessor(
			pipeline.ObjectStoreFetcher{Storage: opts.Storage},
			pipeline.ObjectStoreEmitter{Storage: opts.Storage, OutputPrefix: "cards"},
		)
		if err != nil {
			return nil, fmt.Errorf("initialize object-store processor: %w", err)
		}
	}

	usageStore := opts.UsageStore
	if usageStore == nil {
		if jobAndUsageStore, ok := opts.JobStore.(store.UsageStore); ok {
			usageStore = jobAndUsageStore
		}
	}

	s := &Server{
		logger: logger,
		server: asynq.NewServer(
			queueCfg.RedisClientOpt(),
			asynq.Config{
				Concurrency: workerCfg.Concurrency,
				Queues: map[string]int{
					queueCfg.Name: 1,
				},
				LogLevel: asynq.InfoLevel,
				ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
					retried, _ := asynq.GetRetryCount(ctx)
					maxRetry, _ := asynq.GetMaxRetry(ctx)
					logger.Printf("task failed type=%s retry=%d/%d err=%v", task.Type(), retried, maxRetry, err)
				}),
			},
		),
		sem:             make(chan struct{}, max(1, workerCfg.MaxActiveJobs)),
		localProcessor:  localProcessor,
		objectProcessor: objectProcessor,
		webhookClient:   opts.WebhookClient,
		jobStore:        opts.JobStore,
		usageStore:      usageStore,
		metrics:         newMetrics(),
		tracer:          otel.Tracer("cardframe/worker"),
	}
	return s, nil
}

func (s *Server) Run() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeRenderCard, s.handleRenderCard)
	return s.server.Run(mux)
}

func (s *Server) MetricsHandler() http.Handler {
	return s.metrics.Handler()
}

func (s *Server) handleRenderCard(ctx context.Context, task *asynq.Task) error {
	startedAt := time.Now()
	outcome := domain.JobStatusFailed

	payload, err := queue.ParseRenderCardPayload(task)
	if err != nil {
		return fmt.Errorf("parse payload: %v: %w", err, asynq.SkipRetry)
	}

	ctx, span := s.tracer.Start(ctx, "worker.render_card", trace.WithSpanKind(trace.SpanKindConsumer))
	span.SetAttributes(
		attribute.String("job.id", payload.JobID),
		attribute.String("job.source_type", payload.SourceType),
		attribute.Int("job.renditions", len(payload.Renditions)),
	)
	defer span.End()
	defer func() {
		s.metrics.jobDuration.WithLabelValues(payload.SourceType, outcome).Observe(time.Since(startedAt).Seconds())
		s.metrics.jobsTotal.WithLabelValues(payload.SourceType, outcome).Inc()
	}()

	s.sem <- struct{}{}
	s.metrics.activeJobs.Inc()
	defer func() {
		<-s.sem
		s.metrics.activeJobs.Dec()
	}()

	s.logger.Printf(
		"rendering job_id=%s source_type=%s renditions=%d object_key=%s",
		payload.JobID,
		payload.SourceType,
		len(payload.Renditions),
		payload.ObjectKey,
	)

	s.updateJobStatus(ctx, payload.JobID, domain.JobStatusProcessing)

	request := pipeline.Request{
		JobID:      payload.JobID,
		SourceType: payload.SourceType,
		ObjectKey:  payload.ObjectKey,
		Renditions: payload.Renditions,
	}

	var result pipeline.Result
	switch payload.SourceType {
	case domain.SourceTypeLocalFile:
		result, err = s.localProcessor.Process(ctx, request)
	default:
		if s.objectProcessor == nil {
			err = fmt.Errorf("object storage is not configured: %w", asynq.SkipRetry)
		} else {
			result, err = s.objectProcessor.Process(ctx, request)
		}
	}
	if err != nil {
		s.updateJobStatus(ctx, payload.JobID, domain.JobStatusFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		s.dispatchWebhook(ctx, payload, webhook.Event{
			Name:        webhook.EventJobFailed,
			JobID:       payload.JobID,
			Status:      domain.JobStatusFailed,
			SourceType:  payload.SourceType,
			ObjectKey:   payload.ObjectKey,
			RequestedAt: payload.RequestedAt,
			OccurredAt:  time.Now().UTC(),
			Error:       err.Error(),
		})
		return fmt.Errorf("render cards: %w", err)
	}

	s.logger.Printf("rendered job_id=%s cards=%d", payload.JobID, len(result.Outputs))
	s.updateJobStatus(ctx, payload.JobID, domain.JobStatusSucceeded)
	s.metrics.cardsRenderedTotal.Add(float64(len(result.Outputs)))
	s.recordUsage(ctx, payload.JobID, result, time.Since(startedAt))

	if err := s.dispatchWebhook(ctx, payload, webhook.Event{
		Name:        webhook.EventJobCompleted,
		JobID:       payload.JobID,
		Status:      domain.JobStatusSucceeded,
		SourceType:  payload.SourceType,
		ObjectKey:   payload.ObjectKey,
		RequestedAt: payload.RequestedAt,
		OccurredAt:  time.Now().UTC(),
		Cards:       cardOutputs(result.Outputs),
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "webhook dispatch failed")
		return err
	}

	outcome = domain.JobStatusSucceeded
	span.SetStatus(codes.Ok, "rendered")
	return nil
}

func (s *Server) updateJobStatus(ctx context.Context, jobID, status string) {
	if s.jobStore == nil {
		return
	}
	if _, err := s.jobStore.UpdateStatus(ctx, jobID, status); err != nil {
		s.logger.Printf("job status update failed job_id=%s status=%s err=%v", jobID, status, err)
	}
}

func (s *Server) dispatchWebhook(ctx context.Context, payload queue.RenderCardPayload, evt webhook.Event) error {
	if payload.WebhookURL == "" || s.webhookClient == nil {
		return nil
	}

	if err := s.webhookClient.Send(ctx, payload.WebhookURL, evt); err != nil {
		s.logger.Printf("webhook delivery failed job_id=%s event=%s err=%v", payload.JobID, evt.Name, err)
		return fmt.Errorf("dispatch webhook: %w", err)
	}

	return nil
}

func cardOutputs(outputs []pipeline.Output) []webhook.CardOutput {
	cards := make([]webhook.CardOutput, 0, len(outputs))
	for _, output := range outputs {
		cards = append(cards, webhook.CardOutput{
			RenditionID: output.RenditionID,
			Format:      output.Format,
			Path:        output.Path,
			Bytes:       output.Bytes,
			Width:       output.Width,
			Height:      output.Height,
		})
	}
	return cards
}

func (s *Server) recordUsage(ctx context.Context, jobID string, result pipeline.Result, computeDuration time.Duration) {
	if s.usageStore == nil {
		return
	}

	userID := "anonymous"
	if s.jobStore != nil {
		job, ok, err := s.jobStore.Get(ctx, jobID)
		if err != nil {
			s.logger.Printf("usage lookup failed job_id=%s err=%v", jobID, err)
		} else if ok && strings.TrimSpace(job.UserID) != "" {
			userID = job.UserID
		}
	}

	var (
		pixelsProcessed  int64
		totalOutputBytes int
	)
	for _, output := range result.Outputs {
		pixelsProcessed += int64(output.Width * output.Height)
		totalOutputBytes += output.Bytes
	}

	bytesSaved := int64(result.SourceBytes - totalOutputBytes)
	if bytesSaved < 0 {
		bytesSaved = 0
	}

	computeTimeMS := computeDuration.Milliseconds()
	if computeTimeMS < 1 {
		computeTimeMS = 1
	}

	usage := domain.UsageLog{
		UserID:          userID,
		JobID:           jobID,
		CardsRendered:   len(result.Outputs),
		PixelsProcessed: pixelsProcessed,
		BytesSaved:      bytesSaved,
		ComputeTimeMS:   computeTimeMS,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.usageStore.CreateUsageLog(ctx, usage); err != nil {
		s.logger.Printf("usage log write failed job_id=%s err=%v", jobID, err)
		return
	}

	s.metrics.pixelsProcessedTotal.Add(float64(pixelsProcessed))
	s.metrics.bytesSavedTotal.Add(float64(bytesSaved))
	s.metrics.computeTimeMSTotal.Add(float64(computeTimeMS))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
