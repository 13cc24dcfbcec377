package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Telegram
	BotToken      string
	BotAPIURL     string
	WebhookSecret string

	// Document source
	DocsBaseURL   string
	MaxFetchBytes int64

	// Rendering
	PageLimit int

	// Update processing
	WorkerCount  int
	MaxQueueSize int

	// Store eviction
	DocTTL     time.Duration
	SessionTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		BotToken:      os.Getenv("BOT_TOKEN"),
		BotAPIURL:     envOr("BOT_API_URL", "https://api.telegram.org"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),

		DocsBaseURL:   os.Getenv("DOCS_BASE_URL"),
		MaxFetchBytes: envInt64("MAX_FETCH_BYTES", 10485760), // 10MB

		PageLimit: envInt("PAGE_LIMIT", 1000),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		DocTTL:     envDuration("DOC_TTL", 1*time.Hour),
		SessionTTL: envDuration("SESSION_TTL", 24*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxFetchBytes <= 0 {
		cfg.MaxFetchBytes = 10485760
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 1000
	}
	if cfg.DocTTL <= 0 {
		cfg.DocTTL = 1 * time.Hour
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.DocsBaseURL == "" {
		return fmt.Errorf("DOCS_BASE_URL is required")
	}
	if _, err := url.Parse(c.DocsBaseURL); err != nil {
		return fmt.Errorf("DOCS_BASE_URL is invalid: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
