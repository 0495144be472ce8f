package domain

import "time"

// UsageLog records the work done for one finished render job.
type UsageLog struct {
	UserID          string
	JobID           string
	CardsRendered   int
	PixelsProcessed int64
	BytesSaved      int64
	ComputeTimeMS   int64
	CreatedAt       time.Time
}
