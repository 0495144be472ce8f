package config

import (
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
)

type Config struct {
	API       APIConfig
	Queue     QueueConfig
	Worker    WorkerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Card      CardConfig
	Webhook   WebhookConfig
	RateLimit RateLimitConfig
	Telemetry TelemetryConfig
}

type APIConfig struct {
	Addr       string
	PresignTTL time.Duration
}

type QueueConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Name          string
}

func (q QueueConfig) RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     q.RedisAddr,
		Password: q.RedisPassword,
		DB:       q.RedisDB,
	}
}

type WorkerConfig struct {
	Concurrency    int
	MaxActiveJobs  int
	LocalOutputDir string
	MetricsAddr    string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type DatabaseConfig struct {
	DSN string
}

// CardConfig holds the default card frame. The defaults match the original
// screenshot workflow: 1200x630 cut from ChangeList.png.
type CardConfig struct {
	FrameWidth  int
	FrameHeight int
	SourcePath  string
	OutputPath  string
}

type WebhookConfig struct {
	SigningSecret  string
	MaxAttempts    int
	Timeout        time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

type RateLimitConfig struct {
	Enabled      bool
	Capacity     int
	Window       time.Duration
	UserIDHeader string
}

type TelemetryConfig struct {
	Exporter       string
	OTLPEndpoint   string
	OTLPInsecure   bool
	SampleRatio    float64
	ServiceVersion string
}

func Load() Config {
	defaultWorkerSlots := max(1, runtime.NumCPU()/2)

	return Config{
		API: APIConfig{
			Addr:       env("CARDFRAME_API_ADDR", ":8080"),
			PresignTTL: envDuration("CARDFRAME_PRESIGN_TTL", 15*time.Minute),
		},
		Queue: QueueConfig{
			RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
			RedisPassword: env("REDIS_PASSWORD", ""),
			RedisDB:       envInt("REDIS_DB", 0),
			Name:          env("CARDFRAME_QUEUE", "default"),
		},
		Worker: WorkerConfig{
			Concurrency:    envInt("WORKER_CONCURRENCY", max(2, runtime.NumCPU())),
			MaxActiveJobs:  envInt("WORKER_MAX_ACTIVE_JOBS", defaultWorkerSlots),
			LocalOutputDir: env("WORKER_LOCAL_OUTPUT_DIR", "./.cardframe-output"),
			MetricsAddr:    env("WORKER_METRICS_ADDR", ":9090"),
		},
		Storage: StorageConfig{
			Endpoint:  env("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: env("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: env("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    env("MINIO_BUCKET", "cardframe-jobs"),
			UseSSL:    envBool("MINIO_USE_SSL", false),
		},
		Database: DatabaseConfig{
			DSN: env("POSTGRES_DSN", ""),
		},
		Card: CardConfig{
			FrameWidth:  envInt("CARDFRAME_FRAME_WIDTH", 1200),
			FrameHeight: envInt("CARDFRAME_FRAME_HEIGHT", 630),
			SourcePath:  env("CARDFRAME_SOURCE", "ChangeList.png"),
			OutputPath:  env("CARDFRAME_OUTPUT", "ChangeList_crop.png"),
		},
		Webhook: WebhookConfig{
			SigningSecret:  env("WEBHOOK_SIGNING_SECRET", ""),
			MaxAttempts:    envInt("WEBHOOK_MAX_ATTEMPTS", 3),
			Timeout:        envDuration("WEBHOOK_TIMEOUT", 10*time.Second),
			InitialBackoff: envDuration("WEBHOOK_INITIAL_BACKOFF", time.Second),
			MaxBackoff:     envDuration("WEBHOOK_MAX_BACKOFF", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			Enabled:      envBool("RATE_LIMIT_ENABLED", false),
			Capacity:     envInt("RATE_LIMIT_CAPACITY", 60),
			Window:       envDuration("RATE_LIMIT_WINDOW", time.Minute),
			UserIDHeader: env("RATE_LIMIT_USER_HEADER", "X-User-ID"),
		},
		Telemetry: TelemetryConfig{
			Exporter:       env("TRACE_EXPORTER", "none"),
			OTLPEndpoint:   env("OTLP_ENDPOINT", ""),
			OTLPInsecure:   envBool("OTLP_INSECURE", true),
			SampleRatio:    envFloat("TRACE_SAMPLE_RATIO", 1.0),
			ServiceVersion: env("CARDFRAME_VERSION", "dev"),
		},
	}
}

func env(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func envInt(key string, fallback int) int {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envBool(key string, fallback bool) bool {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envFloat(key string, fallback float64) float64 {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
