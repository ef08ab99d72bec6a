package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Gemini
	GeminiAPIKey   string // fallback when RemoteConfigURL is unset
	GeminiModel    string
	GeminiLanguage string // "en" or "ja"; conditions prompts and the unknown sentinel

	// Remote config
	RemoteConfigURL string

	// Supabase
	SupabaseURL            string
	SupabasePublishableKey string
	SupabaseJWTSecret      string
	SupabaseStorageBucket  string

	// Database
	DatabaseURL string

	// App
	AppID    string // scopes the beers collection per app installation
	PageSize int

	// Server
	Port        string
	Environment string
}

func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiLanguage: getEnv("GEMINI_LANGUAGE", "en"),

		RemoteConfigURL: getEnv("REMOTE_CONFIG_URL", ""),

		SupabaseURL:            getEnv("SUPABASE_URL", ""),
		SupabasePublishableKey: getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
		SupabaseJWTSecret:      getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseStorageBucket:  getEnv("SUPABASE_STORAGE_BUCKET", "beer-images"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		AppID:    getEnv("APP_ID", "beer-analyzer"),
		PageSize: getEnvInt("PAGE_SIZE", 10),

		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" && c.RemoteConfigURL == "" {
		return fmt.Errorf("either GEMINI_API_KEY or REMOTE_CONFIG_URL is required")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseJWTSecret == "" {
		return fmt.Errorf("SUPABASE_JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
