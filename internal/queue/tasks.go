package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dunamismax/cardframe/internal/domain"
	"github.com/hibiken/asynq"
)

const TypeRenderCard = "card:render"

type RenderCardPayload struct {
	JobID       string             `json:"job_id"`
	SourceType  string             `json:"source_type"`
	WebhookURL  string             `json:"webhook_url,omitempty"`
	ObjectKey   string             `json:"object_key"`
	Renditions  []domain.Rendition `json:"renditions"`
	RequestedAt time.Time          `json:"requested_at"`
}

func NewRenderCardTask(payload RenderCardPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal render payload: %w", err)
	}
	return asynq.NewTask(TypeRenderCard, body), nil
}

func ParseRenderCardPayload(task *asynq.Task) (RenderCardPayload, error) {
	var payload RenderCardPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return RenderCardPayload{}, fmt.Errorf("unmarshal render payload: %w", err)
	}
	return payload, nil
}
