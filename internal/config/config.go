package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Upload limits
	MaxUploadBytes int64

	// Chunking defaults
	DefaultMaxWords     int
	DefaultOverlapWords int

	// Conversion history
	HistoryTTL   time.Duration
	HistoryLimit int

	// Stats
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		DefaultMaxWords:     envInt("DEFAULT_MAX_WORDS", 200),
		DefaultOverlapWords: envInt("DEFAULT_OVERLAP_WORDS", 30),

		HistoryTTL:   envDuration("HISTORY_TTL", 1*time.Hour),
		HistoryLimit: envInt("HISTORY_LIMIT", 50),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.DefaultMaxWords <= 0 {
		cfg.DefaultMaxWords = 200
	}
	if cfg.DefaultOverlapWords < 0 {
		cfg.DefaultOverlapWords = 0
	}
	if cfg.HistoryTTL <= 0 {
		cfg.HistoryTTL = 1 * time.Hour
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 50
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.DefaultOverlapWords >= c.DefaultMaxWords {
		return fmt.Errorf("DEFAULT_OVERLAP_WORDS (%d) must be less than DEFAULT_MAX_WORDS (%d)",
			c.DefaultOverlapWords, c.DefaultMaxWords)
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
