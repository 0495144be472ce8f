package store

import (
	"context"
	"testing"
	"time"

	"github.com/dunamismax/cardframe/internal/domain"
)

func TestMemoryJobStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryJobStore()

	job := domain.Job{
		ID:         "job-1",
		Status:     domain.JobStatusCreated,
		SourceType: domain.SourceTypeLocalFile,
		ObjectKey:  "ChangeList.png",
		Renditions: []domain.Rendition{{ID: "og_card"}},
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}
	if err := s.Create(ctx, job); err != nil {
		t.Fatalf("create job: %v", err)
	}

	got, ok, err := s.Get(ctx, "job-1")
	if err != nil || !ok {
		t.Fatalf("expected job, got ok=%v err=%v", ok, err)
	}
	if got.Status != domain.JobStatusCreated {
		t.Fatalf("expected status created, got %s", got.Status)
	}

	updated, err := s.UpdateStatus(ctx, "job-1", domain.JobStatusQueued)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != domain.JobStatusQueued {
		t.Fatalf("expected status queued, got %s", updated.Status)
	}

	if _, err := s.UpdateStatus(ctx, "missing", domain.JobStatusQueued); err != ErrJobNotFound {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestMemoryJobStoreUsageLogs(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryJobStore()

	usage := domain.UsageLog{
		UserID:          "anonymous",
		JobID:           "job-1",
		CardsRendered:   1,
		PixelsProcessed: 1200 * 630,
		ComputeTimeMS:   12,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.CreateUsageLog(ctx, usage); err != nil {
		t.Fatalf("create usage log: %v", err)
	}

	logs := s.UsageLogs()
	if len(logs) != 1 {
		t.Fatalf("expected one usage log, got %d", len(logs))
	}
	if logs[0].PixelsProcessed != 1200*630 {
		t.Fatalf("unexpected pixels processed: %d", logs[0].PixelsProcessed)
	}
}
