package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort             = "8000"
	DefaultModel            = "gemini-2.5-flash"
	DefaultMaterialsDir     = "study-materials"
	DefaultMaxQuestionCount = 50
)

// apiKeyVars are checked in order; the first non-empty value wins.
var apiKeyVars = []string{"GEMINI_API_KEY", "GEMINI_KEY", "GOOGLE_API_KEY"}

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	Port             string
	Env              string
	GeminiAPIKey     string
	GeminiModel      string
	MaterialsDir     string
	AllowedOrigins   []string
	MaxQuestionCount int
	R2               R2Config
	Tracing          TracingConfig
}

// R2Config describes the optional Cloudflare R2 bucket that can replace the
// local materials directory.
type R2Config struct {
	AccountID       string
	BucketName      string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
}

// Enabled reports whether every credential needed to reach the bucket is set.
func (r R2Config) Enabled() bool {
	return r.AccountID != "" && r.BucketName != "" && r.AccessKeyID != "" && r.SecretAccessKey != ""
}

// TracingConfig controls the OpenTelemetry exporter. An empty Endpoint means
// spans are written to stdout.
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// Production reports whether the service runs with production defaults.
func (c *Config) Production() bool {
	switch strings.ToLower(c.Env) {
	case "prod", "production":
		return true
	}
	return false
}

// Load reads a .env file when present and then builds the Config from the
// process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		log.Println("Warning: .env file not found. Relying on system environment variables.")
	}
	return FromEnv()
}

// FromEnv builds the Config from the current environment only.
func FromEnv() (*Config, error) {
	maxCount, err := intEnv("QUIZ_MAX_COUNT", DefaultMaxQuestionCount)
	if err != nil {
		return nil, err
	}
	if maxCount < 1 {
		return nil, fmt.Errorf("QUIZ_MAX_COUNT must be positive, got %d", maxCount)
	}

	ratio := 0.1
	if raw := env("OTEL_SAMPLER_RATIO"); raw != "" {
		ratio, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OTEL_SAMPLER_RATIO %q: %w", raw, err)
		}
		ratio = min(max(ratio, 0), 1)
	}

	return &Config{
		Port:             envOr("PORT", DefaultPort),
		Env:              envOr("APP_ENV", "development"),
		GeminiAPIKey:     firstEnv(apiKeyVars...),
		GeminiModel:      envOr("GEMINI_MODEL", DefaultModel),
		MaterialsDir:     envOr("STUDY_MATERIALS_DIR", DefaultMaterialsDir),
		AllowedOrigins:   splitList(env("CORS_ALLOW_ORIGINS")),
		MaxQuestionCount: maxCount,
		R2: R2Config{
			AccountID:       env("CLOUDFLARE_ACCOUNT_ID"),
			BucketName:      env("R2_BUCKET_NAME"),
			AccessKeyID:     env("R2_ACCESS_KEY_ID"),
			SecretAccessKey: env("R2_SECRET_ACCESS_KEY"),
			Prefix:          strings.Trim(env("R2_MATERIALS_PREFIX"), "/"),
		},
		Tracing: TracingConfig{
			Enabled:     truthy(env("OTEL_ENABLED")),
			Endpoint:    env("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:    truthy(env("OTEL_EXPORTER_OTLP_INSECURE")),
			SampleRatio: ratio,
		},
	}, nil
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func envOr(key, fallback string) string {
	if v := env(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := env(k); v != "" {
			return v
		}
	}
	return ""
}

func intEnv(key string, fallback int) (int, error) {
	raw := env(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.TrimSuffix(part, "/"))
		}
	}
	return out
}
