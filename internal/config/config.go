// Package config provides configuration loading for the jobscrape service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults chosen to match the behavior of the production scraping setup:
// a 5 second settle wait for client-rendered pages, and a 2000 character
// advisory minimum for fetched content.
const (
	DefaultPort             = 8080
	DefaultScrapeWaitMs     = 5000
	DefaultMinContentLength = 2000
	DefaultGeminiModel      = "gemini-2.5-flash"
	DefaultFirecrawlBaseURL = "https://api.firecrawl.dev"
)

// Config holds runtime configuration. All fields can come from a JSON config
// file, environment variables, or flags; missing values fall back to defaults.
type Config struct {
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`

	// Extraction
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`
	GeminiModel  string `json:"gemini_model,omitempty"`

	// Content acquisition
	FirecrawlAPIKey  string `json:"firecrawl_api_key,omitempty"`
	FirecrawlBaseURL string `json:"firecrawl_base_url,omitempty"`
	ScrapeWaitMs     int    `json:"scrape_wait_ms,omitempty"`
	MinContentLength int    `json:"min_content_length,omitempty"`

	// API gate. Empty secret disables token verification (local dev).
	JWTSecret string `json:"jwt_secret,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset.
func FromEnv() *Config {
	cfg := &Config{
		Port:             envInt("PORT", DefaultPort),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      envString("GEMINI_MODEL", DefaultGeminiModel),
		FirecrawlAPIKey:  os.Getenv("FIRECRAWL_API_KEY"),
		FirecrawlBaseURL: envString("FIRECRAWL_BASE_URL", DefaultFirecrawlBaseURL),
		ScrapeWaitMs:     envInt("SCRAPE_WAIT_MS", DefaultScrapeWaitMs),
		MinContentLength: envInt("MIN_CONTENT_LENGTH", DefaultMinContentLength),
		JWTSecret:        os.Getenv("JWT_SECRET"),
	}
	return cfg
}

// LoadFile loads configuration from a JSON file.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// MergeWithDefaults returns a copy of c with zero-valued fields filled from
// defaults. File values win over defaults; callers layer file over env.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.GeminiModel == "" {
		result.GeminiModel = defaults.GeminiModel
	}
	if result.FirecrawlAPIKey == "" {
		result.FirecrawlAPIKey = defaults.FirecrawlAPIKey
	}
	if result.FirecrawlBaseURL == "" {
		result.FirecrawlBaseURL = defaults.FirecrawlBaseURL
	}
	if result.ScrapeWaitMs == 0 {
		result.ScrapeWaitMs = defaults.ScrapeWaitMs
	}
	if result.MinContentLength == 0 {
		result.MinContentLength = defaults.MinContentLength
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if defaults.Verbose {
		result.Verbose = true
	}

	return result
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535")
	}
	if c.ScrapeWaitMs < 0 {
		return fmt.Errorf("config error: 'scrape_wait_ms' must be non-negative")
	}
	if c.MinContentLength < 0 {
		return fmt.Errorf("config error: 'min_content_length' must be non-negative")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required (set DATABASE_URL)")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("config error: 'gemini_api_key' is required (set GEMINI_API_KEY)")
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
