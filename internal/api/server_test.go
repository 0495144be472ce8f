package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dunamismax/cardframe/internal/domain"
	"github.com/dunamismax/cardframe/internal/queue"
	"github.com/dunamismax/cardframe/internal/store"
	"github.com/hibiken/asynq"
)

type fakeEnqueuer struct {
	payloads []queue.RenderCardPayload
}

func (f *fakeEnqueuer) EnqueueRenderCard(_ context.Context, payload queue.RenderCardPayload) (*asynq.TaskInfo, error) {
	f.payloads = append(f.payloads, payload)
	return &asynq.TaskInfo{
		ID:            "task-1",
		Queue:         "default",
		State:         asynq.TaskStatePending,
		NextProcessAt: time.Now().UTC(),
	}, nil
}

func newTestServer(t *testing.T) (*Server, *fakeEnqueuer, *store.MemoryJobStore) {
	t.Helper()
	enqueuer := &fakeEnqueuer{}
	jobStore := store.NewMemoryJobStore()
	logger := log.New(os.Stdout, "[api-test] ", log.LstdFlags)
	return NewServer(logger, enqueuer, jobStore, Options{}), enqueuer, jobStore
}

func TestCreateAndStartJob(t *testing.T) {
	srv, enqueuer, jobStore := newTestServer(t)
	handler := srv.Handler()

	sourcePath := filepath.Join(t.TempDir(), "ChangeList.png")
	if err := os.WriteFile(sourcePath, []byte("png bytes"), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}

	body, _ := json.Marshal(domain.CreateJobRequest{
		SourceType: domain.SourceTypeLocalFile,
		ObjectKey:  sourcePath,
		Renditions: []domain.Rendition{{ID: "og_card"}},
	})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cards", bytes.NewReader(body)))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 for create, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		JobID  string `json:"job_id"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Status != domain.JobStatusCreated {
		t.Fatalf("expected status created, got %s", created.Status)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, fmt.Sprintf("/v1/cards/%s/start", created.JobID), nil))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 for start, got %d: %s", rec.Code, rec.Body.String())
	}

	if len(enqueuer.payloads) != 1 {
		t.Fatalf("expected one enqueued payload, got %d", len(enqueuer.payloads))
	}
	if enqueuer.payloads[0].ObjectKey != sourcePath {
		t.Fatalf("expected object key %s, got %s", sourcePath, enqueuer.payloads[0].ObjectKey)
	}

	job, ok, err := jobStore.Get(context.Background(), created.JobID)
	if err != nil || !ok {
		t.Fatalf("expected stored job, got ok=%v err=%v", ok, err)
	}
	if job.Status != domain.JobStatusQueued {
		t.Fatalf("expected status queued, got %s", job.Status)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cards/"+created.JobID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for get, got %d", rec.Code)
	}
}

func TestStartJobMissingSource(t *testing.T) {
	srv, _, jobStore := newTestServer(t)
	handler := srv.Handler()

	job := domain.Job{
		ID:         "job-missing-src",
		Status:     domain.JobStatusCreated,
		SourceType: domain.SourceTypeLocalFile,
		ObjectKey:  filepath.Join(t.TempDir(), "ChangeList.png"),
		Renditions: []domain.Rendition{{ID: "og_card"}},
	}
	if err := jobStore.Create(context.Background(), job); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cards/job-missing-src/start", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for missing source, got %d", rec.Code)
	}
}

func TestCreateJobRejectsInvalidBody(t *testing.T) {
	srv, _, _ := newTestServer(t)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cards", bytes.NewReader([]byte("{"))))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid JSON, got %d", rec.Code)
	}

	body, _ := json.Marshal(domain.CreateJobRequest{SourceType: "ftp"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cards", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid request, got %d", rec.Code)
	}
}

func TestStartUnknownJob(t *testing.T) {
	srv, _, _ := newTestServer(t)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cards/nope/start", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown job, got %d", rec.Code)
	}
}
