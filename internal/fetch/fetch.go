// Package fetch acquires a markdown snapshot of a job-listing page, either
// through the Firecrawl scraping API or a local headless-browser fallback.
package fetch

import (
	"context"
	"fmt"
	"time"
)

// DefaultTimeout is the overall timeout for a single fetch, including the
// settle wait for client-rendered content.
const DefaultTimeout = 60 * time.Second

// DefaultWaitMs is the settle delay given to client-rendered pages before the
// textual snapshot is taken.
const DefaultWaitMs = 5000

// Result holds the textual snapshot of a fetched page.
type Result struct {
	URL      string
	Markdown string
}

// Fetcher retrieves a markdown representation of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

// Error represents a content acquisition failure. The pipeline treats any
// Error from a Fetcher as fatal: no extraction or write happens after it.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
