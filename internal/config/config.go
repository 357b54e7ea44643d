// Package config loads pipeline settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/easynewsgr/easynews/internal/category"
)

type Config struct {
	// Gemini settings
	GeminiAPIKey     string
	GeminiModel      string
	MaxModelRequests int // model calls per run (0 = unlimited)

	// RSS settings
	FeedsConfigPath string
	MaxItemsPerFeed int
	OutputPath      string

	// Curation policy
	KeywordLimit      int
	FallbackCategory  category.Category
	PerCategoryLimit  int
	RecencyWindow     time.Duration
	EvidenceWindow    int // days, primary
	EvidenceWindowMax int // days, fallback
	MaxEvidence       int
	TrustedDomains    []string
	Blocklist         []string

	// Image search settings
	EnableImageSearch bool
	PixabayAPIKey     string
	MaxSearchCalls    int
	SearchCacheTTL    time.Duration

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	Concurrency    int // parallel per-article model fan-out
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		GeminiModel:       "gemini-1.5-flash",
		MaxModelRequests:  0,
		FeedsConfigPath:   "configs/feeds.yaml",
		MaxItemsPerFeed:   5,
		OutputPath:        "news.json",
		KeywordLimit:      6,
		FallbackCategory:  category.Other,
		PerCategoryLimit:  6,
		RecencyWindow:     24 * time.Hour,
		EvidenceWindow:    7,
		EvidenceWindowMax: 14,
		MaxEvidence:       4,
		MaxSearchCalls:    25,
		SearchCacheTTL:    time.Hour,
		RequestTimeout:    30 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        5 * time.Second,
		Concurrency:       1,
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.PixabayAPIKey = os.Getenv("PIXABAY_API_KEY")

	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.OutputPath = getEnvOrDefault("OUTPUT_PATH", cfg.OutputPath)
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		cfg.GeminiModel = model
	}

	cfg.MaxItemsPerFeed = getEnvIntOrDefault("MAX_ITEMS_PER_FEED", cfg.MaxItemsPerFeed)
	cfg.KeywordLimit = getEnvIntOrDefault("KEYWORD_LIMIT", cfg.KeywordLimit)
	cfg.PerCategoryLimit = getEnvIntOrDefault("PER_CATEGORY_LIMIT", cfg.PerCategoryLimit)
	cfg.EvidenceWindow = getEnvIntOrDefault("EVIDENCE_WINDOW_DAYS", cfg.EvidenceWindow)
	cfg.EvidenceWindowMax = getEnvIntOrDefault("EVIDENCE_WINDOW_DAYS_MAX", cfg.EvidenceWindowMax)
	cfg.MaxEvidence = getEnvIntOrDefault("MAX_EVIDENCE", cfg.MaxEvidence)
	cfg.MaxModelRequests = getEnvIntOrDefault("MAX_MODEL_REQUESTS", cfg.MaxModelRequests)
	cfg.MaxSearchCalls = getEnvIntOrDefault("MAX_SEARCH_CALLS", cfg.MaxSearchCalls)
	cfg.RetryAttempts = getEnvIntOrDefault("RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.Concurrency = getEnvIntOrDefault("CONCURRENCY", cfg.Concurrency)

	if v := os.Getenv("RECENCY_WINDOW_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RecencyWindow = time.Duration(val) * time.Hour
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("RETRY_DELAY_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RetryDelay = time.Duration(val) * time.Second
		}
	}

	if v := os.Getenv("FALLBACK_CATEGORY"); v != "" {
		c := category.Category(strings.ToLower(strings.TrimSpace(v)))
		if !c.Valid() {
			return nil, fmt.Errorf("FALLBACK_CATEGORY %q is not a taxonomy key", v)
		}
		cfg.FallbackCategory = c
	}

	cfg.TrustedDomains = splitList(os.Getenv("TRUSTED_DOMAINS"))
	cfg.Blocklist = splitList(os.Getenv("EVIDENCE_BLOCKLIST"))

	if os.Getenv("ENABLE_IMAGE_SEARCH") == "true" {
		cfg.EnableImageSearch = true
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue >= 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.EnableImageSearch && c.PixabayAPIKey == "" {
		return fmt.Errorf("PIXABAY_API_KEY is required when ENABLE_IMAGE_SEARCH=true")
	}
	if c.PerCategoryLimit <= 0 {
		return fmt.Errorf("PER_CATEGORY_LIMIT must be positive")
	}
	if c.EvidenceWindowMax < c.EvidenceWindow {
		return fmt.Errorf("EVIDENCE_WINDOW_DAYS_MAX must not be smaller than EVIDENCE_WINDOW_DAYS")
	}
	return nil
}
