package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	JobStatusCreated    = "created"
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusSucceeded  = "succeeded"
	JobStatusFailed     = "failed"

	SourceTypeLocalFile   = "local_file"
	SourceTypeS3Presigned = "s3_presigned"
)

// Default card frame. 1200x630 is the OpenGraph preview size; a screenshot
// resized to width 1200 is cropped to this window from the top-left corner.
const (
	DefaultFrameWidth  = 1200
	DefaultFrameHeight = 630
)

type CreateJobRequest struct {
	SourceType string      `json:"source_type"`
	WebhookURL string      `json:"webhook_url,omitempty"`
	ObjectKey  string      `json:"object_key,omitempty"`
	Renditions []Rendition `json:"renditions"`
}

// Rendition describes one card to cut from the source image: the frame it is
// cropped to and the encoding of the result. Zero frame dimensions mean the
// default 1200x630 card.
type Rendition struct {
	ID          string `json:"id"`
	FrameWidth  int    `json:"frame_width,omitempty"`
	FrameHeight int    `json:"frame_height,omitempty"`
	Format      string `json:"format,omitempty"`
	Quality     int    `json:"quality,omitempty"`
}

// Frame returns the target crop window with defaults applied.
func (r Rendition) Frame() (width, height int) {
	width = r.FrameWidth
	if width <= 0 {
		width = DefaultFrameWidth
	}
	height = r.FrameHeight
	if height <= 0 {
		height = DefaultFrameHeight
	}
	return width, height
}

type Job struct {
	ID         string
	Status     string
	SourceType string
	WebhookURL string
	UserID     string
	Renditions []Rendition
	ObjectKey  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (r CreateJobRequest) Validate() error {
	sourceType := strings.ToLower(strings.TrimSpace(r.SourceType))
	if sourceType == "" {
		return errors.New("source_type is required")
	}
	if sourceType != SourceTypeLocalFile && sourceType != SourceTypeS3Presigned {
		return fmt.Errorf("unsupported source_type: %s", r.SourceType)
	}
	if sourceType == SourceTypeLocalFile && strings.TrimSpace(r.ObjectKey) == "" {
		return errors.New("object_key is required for source_type=local_file")
	}
	if len(r.Renditions) == 0 {
		return errors.New("at least one rendition is required")
	}
	for i, rendition := range r.Renditions {
		if strings.TrimSpace(rendition.ID) == "" {
			return fmt.Errorf("renditions[%d].id is required", i)
		}
		if rendition.FrameWidth < 0 || rendition.FrameHeight < 0 {
			return fmt.Errorf("renditions[%d] frame dimensions must not be negative", i)
		}
		if rendition.Quality < 0 || rendition.Quality > 100 {
			return fmt.Errorf("renditions[%d].quality must be between 0 and 100", i)
		}
	}
	return nil
}
