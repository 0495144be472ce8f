package queue

import (
	"testing"
	"time"

	"github.com/dunamismax/cardframe/internal/domain"
)

func TestRenderCardTaskRoundTrip(t *testing.T) {
	payload := RenderCardPayload{
		JobID:      "job-123",
		SourceType: "s3_presigned",
		ObjectKey:  "uploads/job-123/source",
		Renditions: []domain.Rendition{
			{
				ID:          "og_card",
				FrameWidth:  1200,
				FrameHeight: 630,
			},
		},
		RequestedAt: time.Now().UTC(),
	}

	task, err := NewRenderCardTask(payload)
	if err != nil {
		t.Fatalf("NewRenderCardTask returned error: %v", err)
	}

	parsed, err := ParseRenderCardPayload(task)
	if err != nil {
		t.Fatalf("ParseRenderCardPayload returned error: %v", err)
	}

	if parsed.JobID != payload.JobID {
		t.Fatalf("expected job_id %q, got %q", payload.JobID, parsed.JobID)
	}
	if len(parsed.Renditions) != 1 {
		t.Fatalf("expected one rendition, got %d", len(parsed.Renditions))
	}
	if parsed.Renditions[0].FrameWidth != 1200 {
		t.Fatalf("expected frame width 1200, got %d", parsed.Renditions[0].FrameWidth)
	}
}
