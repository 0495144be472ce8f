package worker

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/dunamismax/cardframe/internal/domain"
	"github.com/dunamismax/cardframe/internal/pipeline"
	"github.com/dunamismax/cardframe/internal/store"
)

func TestRecordUsageWritesUsageLog(t *testing.T) {
	jobStore := store.NewMemoryJobStore()
	if err := jobStore.Create(context.Background(), domain.Job{
		ID:         "job-1",
		UserID:     "user-1",
		Status:     domain.JobStatusProcessing,
		SourceType: domain.SourceTypeLocalFile,
		ObjectKey:  "ChangeList.png",
		Renditions: []domain.Rendition{{ID: "og_card"}},
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed job: %v", err)
	}

	usageStore := &captureUsageStore{}
	s := &Server{
		logger:     log.New(io.Discard, "", 0),
		jobStore:   jobStore,
		usageStore: usageStore,
		metrics:    newMetrics(),
	}

	s.recordUsage(context.Background(), "job-1", pipeline.Result{
		SourceBytes: 1_000,
		Outputs: []pipeline.Output{
			{RenditionID: "og_card", Width: 1200, Height: 630, Bytes: 300},
			{RenditionID: "thumb", Width: 300, Height: 300, Bytes: 400},
		},
	}, 250*time.Millisecond)

	if !usageStore.called {
		t.Fatal("expected usage log to be written")
	}
	if usageStore.log.UserID != "user-1" {
		t.Fatalf("expected user_id=user-1, got %s", usageStore.log.UserID)
	}
	if usageStore.log.CardsRendered != 2 {
		t.Fatalf("expected cards_rendered=2, got %d", usageStore.log.CardsRendered)
	}
	if want := int64(1200*630 + 300*300); usageStore.log.PixelsProcessed != want {
		t.Fatalf("expected pixels_processed=%d, got %d", want, usageStore.log.PixelsProcessed)
	}
	if usageStore.log.BytesSaved != 300 {
		t.Fatalf("expected bytes_saved=300, got %d", usageStore.log.BytesSaved)
	}
	if usageStore.log.ComputeTimeMS != 250 {
		t.Fatalf("expected compute_time_ms=250, got %d", usageStore.log.ComputeTimeMS)
	}
}

func TestRecordUsageClampsNegativeBytesSaved(t *testing.T) {
	usageStore := &captureUsageStore{}
	s := &Server{
		logger:     log.New(io.Discard, "", 0),
		usageStore: usageStore,
		metrics:    newMetrics(),
	}

	s.recordUsage(context.Background(), "job-2", pipeline.Result{
		SourceBytes: 100,
		Outputs: []pipeline.Output{
			{RenditionID: "og_card", Width: 5, Height: 5, Bytes: 200},
		},
	}, 0)

	if usageStore.log.BytesSaved != 0 {
		t.Fatalf("expected bytes_saved=0, got %d", usageStore.log.BytesSaved)
	}
	if usageStore.log.ComputeTimeMS < 1 {
		t.Fatalf("expected compute_time_ms to be at least 1, got %d", usageStore.log.ComputeTimeMS)
	}
}

type captureUsageStore struct {
	called bool
	log    domain.UsageLog
}

func (s *captureUsageStore) CreateUsageLog(_ context.Context, usage domain.UsageLog) error {
	s.called = true
	s.log = usage
	return nil
}
