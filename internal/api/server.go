package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dunamismax/cardframe/internal/domain"
	"github.com/dunamismax/cardframe/internal/id"
	"github.com/dunamismax/cardframe/internal/queue"
	"github.com/dunamismax/cardframe/internal/storage"
	"github.com/dunamismax/cardframe/internal/store"
	"github.com/hibiken/asynq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Server struct {
	logger                *log.Logger
	queueClient           queueEnqueuer
	jobStore              store.JobStore
	storage               objectStorage
	presignTTL            time.Duration
	rateLimiter           RateLimiter
	rateLimitUserIDHeader string
	metrics               *metrics
	tracer                trace.Tracer
	mux                   *http.ServeMux
}

type queueEnqueuer interface {
	EnqueueRenderCard(ctx context.Context, payload queue.RenderCardPayload) (*asynq.TaskInfo, error)
}

type objectStorage interface {
	PresignedPutURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
	ObjectExists(ctx context.Context, objectKey string) (bool, error)
}

type Options struct {
	Storage               objectStorage
	PresignTTL            time.Duration
	RateLimiter           RateLimiter
	RateLimitUserIDHeader string
}

func NewServer(logger *log.Logger, queueClient queueEnqueuer, jobStore store.JobStore, opts Options) *Server {
	presignTTL := opts.PresignTTL
	if presignTTL <= 0 {
		presignTTL = 15 * time.Minute
	}
	storage := opts.Storage
	if storage == nil {
		storage = unavailableObjectStorage{}
	}
	userIDHeader := strings.TrimSpace(opts.RateLimitUserIDHeader)
	if userIDHeader == "" {
		userIDHeader = "X-User-ID"
	}

	s := &Server{
		logger:                logger,
		queueClient:           queueClient,
		jobStore:              jobStore,
		storage:               storage,
		presignTTL:            presignTTL,
		rateLimiter:           opts.RateLimiter,
		rateLimitUserIDHeader: userIDHeader,
		metrics:               newMetrics(),
		tracer:                otel.Tracer("cardframe/api"),
		mux:                   http.NewServeMux(),
	}
	s.routes()
	return s
}

type unavailableObjectStorage struct{}

func (unavailableObjectStorage) PresignedPutURL(_ context.Context, _ string, _ time.Duration) (string, error) {
	return "", errors.New("object storage is unavailable")
}

func (unavailableObjectStorage) ObjectExists(_ context.Context, _ string) (bool, error) {
	return false, errors.New("object storage is unavailable")
}

func (s *Server) Handler() http.Handler {
	return s.metrics.withHTTPMetrics(s.withTracing(s.withRateLimit(s.mux)))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("GET /metrics", s.metrics.metricsHandler())
	s.mux.HandleFunc("POST /v1/cards", s.handleCreateJob)
	s.mux.HandleFunc("GET /v1/cards/{id}", s.handleGetJob)
	s.mux.HandleFunc("POST /v1/cards/{id}/start", s.handleStartJob)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	jobID := id.New()
	sourceType := strings.ToLower(strings.TrimSpace(req.SourceType))
	objectKey := strings.TrimSpace(req.ObjectKey)
	uploadState := "not_required"
	presignedPutURL := ""

	if sourceType == domain.SourceTypeS3Presigned {
		objectKey = storage.SourceUploadKey(jobID)
		url, err := s.storage.PresignedPutURL(r.Context(), objectKey, s.presignTTL)
		if err != nil {
			s.logger.Printf("generate presigned url failed for job %s: %v", jobID, err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to generate upload URL"})
			return
		}
		presignedPutURL = url
		uploadState = "ready"
	}

	job := domain.Job{
		ID:         jobID,
		Status:     domain.JobStatusCreated,
		SourceType: sourceType,
		WebhookURL: req.WebhookURL,
		UserID:     strings.TrimSpace(r.Header.Get(s.rateLimitUserIDHeader)),
		Renditions: req.Renditions,
		ObjectKey:  objectKey,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.jobStore.Create(r.Context(), job); err != nil {
		s.logger.Printf("create job failed for job %s: %v", job.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create job"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id": job.ID,
		"status": job.Status,
		"upload": map[string]string{
			"object_key":          job.ObjectKey,
			"presigned_put_url":   presignedPutURL,
			"presigned_url_state": uploadState,
		},
		"start_url": fmt.Sprintf("/v1/cards/%s/start", job.ID),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, ok, err := s.jobStore.Get(r.Context(), jobID)
	if err != nil {
		s.logger.Printf("fetch job failed for job %s: %v", jobID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load job"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"job_id":      job.ID,
		"status":      job.Status,
		"source_type": job.SourceType,
		"object_key":  job.ObjectKey,
		"renditions":  job.Renditions,
		"created_at":  job.CreatedAt,
		"updated_at":  job.UpdatedAt,
	})
}

func (s *Server) handleStartJob(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("id")

	job, ok, err := s.jobStore.Get(r.Context(), jobID)
	if err != nil {
		s.logger.Printf("fetch job failed for job %s: %v", jobID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load job"})
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "job not found"})
		return
	}

	if err := s.verifySourceExists(r.Context(), job); err != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return
	}

	payload := queue.RenderCardPayload{
		JobID:       job.ID,
		SourceType:  job.SourceType,
		WebhookURL:  job.WebhookURL,
		ObjectKey:   job.ObjectKey,
		Renditions:  job.Renditions,
		RequestedAt: time.Now().UTC(),
	}

	taskInfo, err := s.queueClient.EnqueueRenderCard(r.Context(), payload)
	if err != nil {
		s.logger.Printf("enqueue failed for job %s: %v", job.ID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to enqueue job"})
		return
	}

	if _, err := s.jobStore.UpdateStatus(r.Context(), job.ID, domain.JobStatusQueued); err != nil {
		s.logger.Printf("update status failed for job %s: %v", job.ID, err)
	}

	s.metrics.queueEnqueued.WithLabelValues(taskInfo.Queue).Inc()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":      job.ID,
		"status":      domain.JobStatusQueued,
		"queue":       taskInfo.Queue,
		"task_id":     taskInfo.ID,
		"state":       taskInfo.State.String(),
		"enqueued_at": taskInfo.NextProcessAt,
	})
}

func (s *Server) verifySourceExists(ctx context.Context, job domain.Job) error {
	switch job.SourceType {
	case domain.SourceTypeLocalFile:
		if _, err := os.Stat(job.ObjectKey); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("source image is missing: %s", job.ObjectKey)
			}
			return fmt.Errorf("source image check failed: %w", err)
		}
		return nil
	default:
		exists, err := s.storage.ObjectExists(ctx, job.ObjectKey)
		if err != nil {
			return fmt.Errorf("source image check failed: %w", err)
		}
		if !exists {
			return fmt.Errorf("source image is missing: %s", job.ObjectKey)
		}
		return nil
	}
}

func decodeJSON(r *http.Request, into any) error {
	const maxBodyBytes = 1 << 20
	limited := io.LimitReader(r.Body, maxBodyBytes)
	decoder := json.NewDecoder(limited)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(into); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return errors.New("invalid JSON body: multiple JSON values are not allowed")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
