package config

import (
	"fmt"
	"os"
)

type Config struct {
	// Task runner (analysis + scraping jobs)
	TriggerAPIKey        string
	TriggerAPIBaseURL    string
	TriggerWebhookSecret string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Sanity CMS (read-side content)
	SanityAPIURL     string
	SanityProjectID  string
	SanityDataset    string
	SanityAPIVersion string
	SanityToken      string

	// Redis (rate limiting); limiter is disabled when unset
	RedisAddr     string
	RedisPassword string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	BaseURL     string
	ClientURL   string
}

func Load() (*Config, error) {
	cfg := &Config{
		TriggerAPIKey:        getEnv("TRIGGER_API_KEY", ""),
		TriggerAPIBaseURL:    getEnv("TRIGGER_API_BASE_URL", "https://api.trigger.dev"),
		TriggerWebhookSecret: getEnv("TRIGGER_WEBHOOK_SECRET", ""),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "media"),

		SanityAPIURL:     getEnv("SANITY_API_URL", ""),
		SanityProjectID:  getEnv("SANITY_PROJECT_ID", ""),
		SanityDataset:    getEnv("SANITY_DATASET", "production"),
		SanityAPIVersion: getEnv("SANITY_API_VERSION", "2024-01-01"),
		SanityToken:      getEnv("SANITY_TOKEN", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8080"),
		ClientURL:   getEnv("CLIENT_URL", "http://localhost:3000"),
	}

	if cfg.SanityAPIURL == "" && cfg.SanityProjectID != "" {
		cfg.SanityAPIURL = fmt.Sprintf("https://%s.api.sanity.io", cfg.SanityProjectID)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabasePublishableKey == "" {
		return fmt.Errorf("SUPABASE_PUBLISHABLE_KEY is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
