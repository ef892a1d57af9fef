package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// FirecrawlClient fetches pages through the Firecrawl scrape API. Only the
// markdown format is requested; structural parsing is left to the extractor.
type FirecrawlClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	waitMs     int
	log        zerolog.Logger
}

// FirecrawlOptions configures the Firecrawl client.
type FirecrawlOptions struct {
	BaseURL string
	WaitMs  int
	Timeout time.Duration
}

// NewFirecrawlClient creates a Firecrawl-backed fetcher.
func NewFirecrawlClient(apiKey string, opts *FirecrawlOptions, logger zerolog.Logger) *FirecrawlClient {
	if opts == nil {
		opts = &FirecrawlOptions{}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.firecrawl.dev"
	}
	if opts.WaitMs == 0 {
		opts.WaitMs = DefaultWaitMs
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	return &FirecrawlClient{
		httpClient: &http.Client{Timeout: opts.Timeout},
		baseURL:    opts.BaseURL,
		apiKey:     apiKey,
		waitMs:     opts.WaitMs,
		log:        logger,
	}
}

type firecrawlScrapeRequest struct {
	URL     string   `json:"url"`
	Formats []string `json:"formats"`
	WaitFor int      `json:"waitFor"`
}

type firecrawlScrapeResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		Markdown string `json:"markdown"`
	} `json:"data"`
}

// Fetch requests a markdown snapshot of the page, waiting for dynamic content
// to settle before capture. A response with no markdown is a hard failure.
func (c *FirecrawlClient) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	if urlStr == "" {
		return nil, &Error{URL: urlStr, Message: "url is empty"}
	}

	payload, err := json.Marshal(firecrawlScrapeRequest{
		URL:     urlStr,
		Formats: []string{"markdown"},
		WaitFor: c.waitMs,
	})
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to encode request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scrape", bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "scrape request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("scrape API returned HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))}
	}

	var parsed firecrawlScrapeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to decode scrape response", Cause: err}
	}
	if !parsed.Success {
		return nil, &Error{URL: urlStr, Message: "scrape API reported failure: " + parsed.Error}
	}
	if parsed.Data.Markdown == "" {
		return nil, &Error{URL: urlStr, Message: "no markdown content in scrape response"}
	}

	c.log.Debug().Str("url", urlStr).Int("markdown_len", len(parsed.Data.Markdown)).Msg("firecrawl fetch complete")

	return &Result{URL: urlStr, Markdown: parsed.Data.Markdown}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
