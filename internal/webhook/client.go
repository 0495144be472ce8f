package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	HeaderSignature = "X-Cardframe-Signature"
	HeaderTimestamp = "X-Cardframe-Timestamp"
	HeaderEvent     = "X-Cardframe-Event"

	EventJobCompleted = "job.completed"
	EventJobFailed    = "job.failed"
)

// CardOutput describes one rendered card inside a job event.
type CardOutput struct {
	RenditionID string `json:"rendition_id"`
	Format      string `json:"format"`
	Path        string `json:"path,omitempty"`
	Bytes       int    `json:"bytes"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Event is the body delivered for a render job transition. Name also goes
// out as the X-Cardframe-Event header so receivers can route before parsing.
type Event struct {
	Name        string       `json:"event"`
	JobID       string       `json:"job_id"`
	Status      string       `json:"status"`
	SourceType  string       `json:"source_type"`
	ObjectKey   string       `json:"object_key,omitempty"`
	RequestedAt time.Time    `json:"requested_at,omitempty"`
	OccurredAt  time.Time    `json:"occurred_at"`
	Error       string       `json:"error,omitempty"`
	Cards       []CardOutput `json:"cards,omitempty"`
}

type Config struct {
	SigningSecret  string
	Timeout        time.Duration
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// Client delivers signed job events. Bodies are signed with HMAC-SHA256
// over "<unix timestamp>.<body>".
type Client struct {
	httpClient     *http.Client
	signingSecret  string
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	initialBackoff := cfg.InitialBackoff
	if initialBackoff <= 0 {
		initialBackoff = 1 * time.Second
	}

	maxBackoff := cfg.MaxBackoff
	if maxBackoff < initialBackoff {
		maxBackoff = initialBackoff
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		signingSecret:  cfg.SigningSecret,
		maxAttempts:    maxAttempts,
		initialBackoff: initialBackoff,
		maxBackoff:     maxBackoff,
	}
}

// Send delivers evt to endpoint, retrying with exponential backoff. A blank
// endpoint is a no-op so callers can pass through unconfigured jobs.
func (c *Client) Send(ctx context.Context, endpoint string, evt Event) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil
	}
	if strings.TrimSpace(evt.Name) == "" {
		return errors.New("webhook event name is required")
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal webhook event: %w", err)
	}

	timestamp := strconv.FormatInt(time.Now().UTC().Unix(), 10)
	signature := c.sign(timestamp, body)

	backoff := c.initialBackoff
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = c.deliver(ctx, endpoint, evt.Name, timestamp, signature, body); lastErr == nil {
			return nil
		}
		if attempt == c.maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = minDuration(backoff*2, c.maxBackoff)
	}

	return fmt.Errorf("webhook delivery failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) deliver(ctx context.Context, endpoint, event, timestamp, signature string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderTimestamp, timestamp)
	req.Header.Set(HeaderSignature, signature)
	req.Header.Set(HeaderEvent, event)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status=%d", resp.StatusCode)
	}
	return nil
}

func (c *Client) sign(timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.signingSecret))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
