package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dimasramdhani/jobscrape/internal/config"
	"github.com/dimasramdhani/jobscrape/internal/db"
	"github.com/dimasramdhani/jobscrape/internal/extraction"
	"github.com/dimasramdhani/jobscrape/internal/fetch"
	"github.com/dimasramdhani/jobscrape/internal/llm"
	"github.com/dimasramdhani/jobscrape/internal/pipeline"
)

// loadConfig builds the effective configuration and checks the values the
// pipeline cannot run without. When a config file is given its values win;
// environment variables and defaults fill the gaps.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.FromEnv()
	if path != "" {
		fileCfg, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		merged := fileCfg.MergeWithDefaults(*cfg)
		cfg = &merged
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigForExport requires only the database settings; export never
// touches the LLM or the fetcher.
func loadConfigForExport() (*config.Config, error) {
	cfg := config.FromEnv()
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return cfg, nil
}

// newFetcher picks the content source: Firecrawl when an API key is set,
// otherwise a local headless browser.
func newFetcher(cfg *config.Config, logger zerolog.Logger) fetch.Fetcher {
	if cfg.FirecrawlAPIKey != "" {
		return fetch.NewFirecrawlClient(cfg.FirecrawlAPIKey, &fetch.FirecrawlOptions{
			BaseURL: cfg.FirecrawlBaseURL,
			WaitMs:  cfg.ScrapeWaitMs,
		}, logger)
	}
	logger.Info().Msg("FIRECRAWL_API_KEY not set, using headless browser fetcher")
	return fetch.NewBrowserFetcher(cfg.ScrapeWaitMs, logger)
}

// buildPipeline wires the full scrape pipeline. The returned cleanup closes
// the database pool and the LLM client.
func buildPipeline(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pipeline.Orchestrator, *db.DB, func(), error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	llmClient, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		database.Close()
		return nil, nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	extractor := extraction.NewGeminiExtractor(llmClient, logger)
	orchestrator := pipeline.New(newFetcher(cfg, logger), extractor, database, cfg.MinContentLength, logger)

	cleanup := func() {
		_ = llmClient.Close()
		database.Close()
	}
	return orchestrator, database, cleanup, nil
}
